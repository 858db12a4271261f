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
	"github.com/proofcheck/proofcheck/internal/logger"
	"github.com/proofcheck/proofcheck/pkg/imagecache"
	"github.com/spf13/cobra"
)

const AppName = "proofcheck"

// defaultCacheCapacity mirrors the original Tauri app's in-memory
// resize cache capacity for the "preload" / "resize" commands.
const defaultCacheCapacity = 64

// sharedCache backs the resize and preload subcommands within a single
// process invocation, matching the engine's "created once at process
// start" cache lifecycle (§3).
var sharedCache = imagecache.New(defaultCacheCapacity)

var log *logger.Logger

func Execute() error {
	rootCmd := &cobra.Command{
		Use:   AppName,
		Short: AppName + " - print-production image verification engine",
	}

	logLevel := rootCmd.PersistentFlags().String("log-level", "INFO", "log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		log = logger.New(cmd.OutOrStderr(), logger.ParseLevel(*logLevel))
	}

	rootCmd.AddCommand(DefineDiffCommand())
	rootCmd.AddCommand(DefineHeatmapCommand())
	rootCmd.AddCommand(DefineParseLPFCommand())
	rootCmd.AddCommand(DefinePreloadCommand())
	rootCmd.AddCommand(DefineClearCacheCommand())
	rootCmd.AddCommand(DefineResizeCommand())

	return rootCmd.Execute()
}
