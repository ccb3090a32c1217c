/*
 * i960 - Monitor process.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"io"
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	config "github.com/i960dev/i960emu/config/configparser"
	"github.com/i960dev/i960emu/cpu"
	"github.com/i960dev/i960emu/memory"
	"github.com/i960dev/i960emu/monitor"
	logger "github.com/i960dev/i960emu/util/logger"
)

var Logger *slog.Logger

func main() {
	optConfig := getopt.StringLong("config", 'c', "i960.cfg", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optLoad := getopt.StringLong("load", 'f', "", "Raw memory image to load at address 0")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var logWriter io.Writer
	if *optLogFile != "" {
		file, err := os.Create(*optLogFile)
		if err != nil {
			os.Exit(1)
		}
		logWriter = file
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	debug := false
	Logger = slog.New(logger.NewHandler(logWriter, &slog.HandlerOptions{Level: programLevel, AddSource: false}, &debug))
	slog.SetDefault(Logger)

	Logger.Info("i960 monitor started")

	cfg := config.Default()
	if _, err := os.Stat(*optConfig); err == nil {
		cfg, err = config.Load(*optConfig)
		if err != nil {
			Logger.Error("loading configuration", "error", err)
			os.Exit(1)
		}
	}

	mem := memory.New(cfg.MemSize)
	if *optLoad != "" {
		if err := loadImage(mem, *optLoad); err != nil {
			Logger.Error("loading memory image", "error", err)
			os.Exit(1)
		}
	}

	opts := cpu.Options{
		ICONAddr:      cfg.ICONAddr,
		CallTableBase: cfg.CallTableBase,
		IntdisSetsBit: cfg.IntdisSetsBit,
	}
	core := cpu.New(mem, monitor.SlogFaultReporter{}, nil, opts)

	monitor.Run(core)

	Logger.Info("monitor exiting")
}

func loadImage(mem *memory.Memory, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	for i, b := range data {
		mem.WriteByte(uint32(i), b)
	}
	return nil
}
