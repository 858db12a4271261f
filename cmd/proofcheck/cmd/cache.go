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

func DefineResizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "resize <path>",
		Short:        "Decode and resize-to-fit an image, serving the cache before decoding",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunResize,
	}
	cmd.Flags().Int("max-width", 1024, "maximum output width")
	cmd.Flags().Int("max-height", 1024, "maximum output height")
	cmd.Flags().Bool("mmap", false, "read the source file through a memory mapping instead of a heap copy")
	return cmd
}

func RunResize(cmd *cobra.Command, args []string) error {
	maxW, _ := cmd.Flags().GetInt("max-width")
	maxH, _ := cmd.Flags().GetInt("max-height")
	useMmap, _ := cmd.Flags().GetBool("mmap")

	var result pipeline.ResizeResult
	var err error
	if useMmap {
		result, err = pipeline.DecodeAndResizeImageMmap(sharedCache, args[0], maxW, maxH)
	} else {
		result, err = pipeline.DecodeAndResizeImage(sharedCache, args[0], maxW, maxH)
	}
	if err != nil {
		log.Named("resize").Errorf("resize failed: %v", err)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "width=%d height=%d original=%dx%d data_url_bytes=%d\n",
		result.Width, result.Height, result.OrigWidth, result.OrigHeight, len(result.DataURL))
	return nil
}

func DefinePreloadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "preload <path> [path...]",
		Short:        "Decode and resize a batch of paths into the shared cache",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         RunPreload,
	}
	cmd.Flags().Int("max-width", 1024, "maximum cached width")
	cmd.Flags().Int("max-height", 1024, "maximum cached height")
	return cmd
}

func RunPreload(cmd *cobra.Command, args []string) error {
	maxW, _ := cmd.Flags().GetInt("max-width")
	maxH, _ := cmd.Flags().GetInt("max-height")

	statuses, err := pipeline.PreloadImages(cmd.Context(), sharedCache, args, maxW, maxH)
	if err != nil {
		log.Named("preload").Errorf("preload failed: %v", err)
		return err
	}

	for _, s := range statuses {
		fmt.Fprintln(cmd.OutOrStdout(), s)
	}
	log.Named("preload").Infof("preload complete: %d paths processed, cache holds %d entries", len(args), sharedCache.Len())
	return nil
}

func DefineClearCacheCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "clear-cache",
		Short:        "Empty the shared resize cache",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline.ClearImageCache(sharedCache)
			log.Named("clear-cache").Info("image cache cleared")
			return nil
		},
	}
}
