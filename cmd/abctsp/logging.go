package main

import (
	"os"

	logging "github.com/op/go-logging"
)

var format = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{level:.4s} %{module} ▶ %{message}`,
)

// installLogging wires every package logger (corelp, separator, price,
// abcsearch, cmd) to one leveled stderr backend, matching the
// zengxiaofei-ALLHiC BackendFormatter convention: a single formatted
// backend, level raised to DEBUG under -V.
func installLogging(verbose bool) {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatted := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(formatted)
	level := logging.NOTICE
	if verbose {
		level = logging.DEBUG
	}
	leveled.SetLevel(level, "")
	logging.SetBackend(leveled)
}
