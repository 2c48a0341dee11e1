package main

import (
	"os"

	"github.com/indigo-web/simpleweb/config"
	"github.com/indigo-web/simpleweb/internal/flagutil"
)

type Opts struct {
	Listen     []string          `short:"l" long:"listen" description:"Address to listen on, may be repeated" default:":8080"`
	Root       string            `short:"r" long:"root" description:"Directory resources are served from" default:"."`
	ConfigPath string            `short:"c" long:"config" description:"Path to a JSON or TOML config file"`
	LogLevel   flagutil.LogLevel `short:"v" long:"verbosity" description:"Verbosity level" default:"info"`
}

// Config loads the config file if one was passed, otherwise returns defaults.
func (o *Opts) Config() (*config.Config, error) {
	if len(o.ConfigPath) == 0 {
		return config.Default(), nil
	}

	return config.LoadFile(o.ConfigPath)
}

// RootDir checks the root exists and is a directory.
func (o *Opts) RootDir() (string, error) {
	info, err := os.Stat(o.Root)
	if err != nil {
		return "", err
	}

	if !info.IsDir() {
		return "", &os.PathError{Op: "root", Path: o.Root, Err: os.ErrInvalid}
	}

	return o.Root, nil
}
