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

func DefineParseLPFCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "parse-lpf <path>",
		Short:        "Flatten an LPF document to a PNG (or JPEG preview) data URL",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunParseLPF,
	}
	cmd.Flags().Int("preview-max-width", 0, "if set, return a JPEG preview capped to this width instead of a full PNG")
	return cmd
}

func RunParseLPF(cmd *cobra.Command, args []string) error {
	maxWidth, _ := cmd.Flags().GetInt("preview-max-width")

	var result pipeline.ParseLPFResult
	var err error
	if maxWidth > 0 {
		result, err = pipeline.ParseLPFPreview(args[0], maxWidth)
	} else {
		result, err = pipeline.ParseLPF(args[0])
	}
	if err != nil {
		log.Named("parse-lpf").Errorf("parse-lpf failed: %v", err)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "width=%d height=%d data_url_bytes=%d\n", result.Width, result.Height, len(result.DataURL))
	return nil
}
