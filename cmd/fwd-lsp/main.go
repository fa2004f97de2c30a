// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"
	"os"

	"fwdgen/internal/config"
	"fwdgen/internal/lsp"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/tliron/glsp/server"
)

const lsName = "fwd" // Name identifier for the language server

var version = "0.1.0"

func main() {
	configPath := flag.String("config", "", "path to fwd.toml (default: search upwards from the working directory)")
	verbosity := flag.Int("v", 1, "log verbosity (0 = quiet, 2 = debug)")
	flag.Parse()

	// Logs go to stderr, stdout carries the protocol
	commonlog.Configure(*verbosity, nil)
	log := commonlog.GetLogger("fwd.lsp")

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	handler := lsp.NewFwdHandler(cfg, version)

	// Parameters: the protocol handler, the name shown to clients, and
	// whether to enable glsp's own debug logs
	s := server.NewServer(handler.Protocol(), lsName, false)

	log.Infof("starting %s language server %s", lsName, version)

	if err := s.RunStdio(); err != nil {
		log.Errorf("language server stopped: %s", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.FindAndLoad(".")
}
