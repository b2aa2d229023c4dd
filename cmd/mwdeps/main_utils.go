package main

import (
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"runtime/trace"

	"github.com/fatih/color"
)

var logger = log.New(os.Stderr, "", 0)

func printErrorToStderr(args []string, errString string) {
	logger.Printf("args: %v", args)
	logger.Print(color.RedString("[ERROR] %v", errString))
}

func createTraceFile(osArgs []string, traceFile string) func() {
	f, err := os.Create(traceFile)
	if err != nil {
		printErrorToStderr(osArgs, fmt.Sprintf("Failed to create trace file: %v", err))
		return nil
	}
	if err := trace.Start(f); err != nil {
		printErrorToStderr(osArgs, fmt.Sprintf("Failed to start trace: %v", err))
		f.Close()
		return nil
	}
	return func() {
		trace.Stop()
		f.Close()
	}
}

func createCpuprofileFile(osArgs []string, cpuprofileFile string) func() {
	f, err := os.Create(cpuprofileFile)
	if err != nil {
		printErrorToStderr(osArgs, fmt.Sprintf("Failed to create cpuprofile file: %v", err))
		return nil
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		printErrorToStderr(osArgs, fmt.Sprintf("Failed to start cpu profile: %v", err))
		f.Close()
		return nil
	}
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}
}
