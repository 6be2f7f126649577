package logger

import (
	"io"
	"log"
	"os"

	"github.com/fatih/color"
)

// Debug is the shared file logger. It discards output until Init is called.
var Debug = log.New(io.Discard, "", log.LstdFlags|log.Lshortfile)

var logFile *os.File

// Init points Debug at filename - call this from main
func Init(filename string) error {
	f, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return err
	}
	logFile = f
	Debug = log.New(f, "", log.LstdFlags|log.Lshortfile)
	Debug.Println("Logger initialized")
	return nil
}

// Close releases the log file opened by Init.
func Close() error {
	if logFile == nil {
		return nil
	}
	Debug = log.New(io.Discard, "", log.LstdFlags|log.Lshortfile)
	err := logFile.Close()
	logFile = nil
	return err
}

// Screen prints text to the terminal in the given colour.
func Screen(text string, c *color.Color) {
	if c == nil {
		print(text)
		return
	}
	c.Print(text)
}

var (
	InfoColor  = color.RGB(150, 150, 150)
	WarnColor  = color.RGB(150, 160, 98)
	ErrorColor = color.RGB(250, 150, 150)
)
