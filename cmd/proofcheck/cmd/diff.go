// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package cmd

import (
	"fmt"

	"github.com/proofcheck/proofcheck/internal/pipeline"
	"github.com/spf13/cobra"
)

func DefineDiffCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "diff <image_a> <image_b>",
		Short:        "Run the sharp per-pixel diff between two like-for-like images",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         RunDiff,
	}
	cmd.Flags().Int("threshold", 10, "per-channel difference threshold (0-255)")
	cmd.Flags().Bool("check", false, "skip image encoding, print only counts and markers")
	return cmd
}

func RunDiff(cmd *cobra.Command, args []string) error {
	threshold, _ := cmd.Flags().GetInt("threshold")
	checkOnly, _ := cmd.Flags().GetBool("check")

	var result pipeline.SimpleDiffResult
	var err error
	if checkOnly {
		result, err = pipeline.CheckDiffSimple(cmd.Context(), args[0], args[1], threshold)
	} else {
		result, err = pipeline.ComputeDiffSimple(cmd.Context(), args[0], args[1], threshold)
	}
	if err != nil {
		log.Named("diff").Errorf("diff failed: %v", err)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "has_diff=%v diff_count=%d markers=%d size=%dx%d\n",
		result.HasDiff, result.DiffCount, len(result.Markers), result.ImageWidth, result.ImageHeight)
	for _, m := range result.Markers {
		fmt.Fprintf(cmd.OutOrStdout(), "  marker center=(%.1f,%.1f) radius=%.1f count=%d\n", m.X, m.Y, m.Radius, m.Count)
	}
	if result.DiffImage != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "diff_image bytes=%d\n", len(result.DiffImage))
	}
	return nil
}
