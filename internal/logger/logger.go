package logger

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
	gray   = "\033[90m"
)

var colorEnabled = isatty.IsTerminal(os.Stdout.Fd())

func paint(color, s string) string {
	if !colorEnabled {
		return s
	}
	return color + s + reset
}

// Info logs a neutral progress message under a component tag.
func Info(tag, msg string) {
	fmt.Printf("%s %s\n", paint(cyan, "["+tag+"]"), msg)
}

// Success logs a completed step.
func Success(tag, msg string) {
	fmt.Printf("%s %s\n", paint(green, "["+tag+"]"), msg)
}

// Warn logs a recoverable problem.
func Warn(tag, msg string) {
	fmt.Printf("%s %s\n", paint(yellow, "["+tag+"]"), msg)
}

// Error logs a failure.
func Error(tag, msg string) {
	fmt.Printf("%s %s\n", paint(red, "["+tag+"]"), msg)
}

// Banner prints the startup banner with the build version.
func Banner(version string) {
	if version == "" {
		version = "dev"
	}
	fmt.Println(paint(bold, "NaviCampus indoor wayfinding server"))
	fmt.Printf("%s\n", paint(gray, "version "+version))
}

// Section prints a titled divider for grouped startup stats.
func Section(title string) {
	fmt.Printf("\n%s\n", paint(bold, "── "+title+" ──"))
}

// Stats prints a single key/value statistic line.
func Stats(key string, value int) {
	fmt.Printf("  %-14s %d\n", key, value)
}

// Server announces the listen address.
func Server(addr string) {
	fmt.Printf("%s listening on %s\n", paint(green, "[Server]"), paint(bold, "http://"+addr))
}
