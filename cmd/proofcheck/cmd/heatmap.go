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

func DefineHeatmapCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "heatmap <lpf_path> <raster_path>",
		Short:        "Run the density-weighted heatmap diff between an LPF source and a flattened raster",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         RunHeatmap,
	}
	cmd.Flags().Int("threshold", 10, "per-channel difference threshold (0-255)")
	cmd.Flags().Bool("check", false, "skip image encoding, print only counts and markers")
	cmd.Flags().IntSlice("crop", nil, "crop bounds left,top,right,bottom over the LPF source; defaults to its full extent")
	return cmd
}

func RunHeatmap(cmd *cobra.Command, args []string) error {
	threshold, _ := cmd.Flags().GetInt("threshold")
	checkOnly, _ := cmd.Flags().GetBool("check")
	cropFlag, _ := cmd.Flags().GetIntSlice("crop")

	lpfPath, rasterPath := args[0], args[1]

	crop, err := resolveCropBounds(lpfPath, cropFlag)
	if err != nil {
		log.Named("heatmap").Errorf("heatmap failed: %v", err)
		return err
	}

	var result pipeline.HeatmapDiffResult
	if checkOnly {
		result, err = pipeline.CheckDiffHeatmap(cmd.Context(), lpfPath, rasterPath, crop, threshold)
	} else {
		result, err = pipeline.ComputeDiffHeatmap(cmd.Context(), lpfPath, rasterPath, crop, threshold)
	}
	if err != nil {
		log.Named("heatmap").Errorf("heatmap failed: %v", err)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "has_diff=%v diff_probability=%.1f high_density_count=%d markers=%d size=%dx%d\n",
		result.HasDiff, result.DiffProbability, result.HighDensityCount, len(result.Markers), result.ImageWidth, result.ImageHeight)
	for _, m := range result.Markers {
		fmt.Fprintf(cmd.OutOrStdout(), "  marker center=(%.1f,%.1f) radius=%.1f count=%d\n", m.X, m.Y, m.Radius, m.Count)
	}
	return nil
}

func resolveCropBounds(lpfPath string, flag []int) (pipeline.CropBounds, error) {
	if len(flag) == 4 {
		return pipeline.CropBounds{Left: flag[0], Top: flag[1], Right: flag[2], Bottom: flag[3]}, nil
	}

	parsed, err := pipeline.ParseLPF(lpfPath)
	if err != nil {
		return pipeline.CropBounds{}, err
	}
	return pipeline.CropBounds{Left: 0, Top: 0, Right: parsed.Width, Bottom: parsed.Height}, nil
}
