package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unsafe"

	"github.com/BurntSushi/toml"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func init() {
	// durations are accepted both as time.ParseDuration strings ("90s") and as plain
	// nanosecond numbers, the way encoding/json would decode them
	jsoniter.RegisterTypeDecoderFunc("time.Duration", func(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
		switch iter.WhatIsNext() {
		case jsoniter.StringValue:
			d, err := time.ParseDuration(iter.ReadString())
			if err != nil {
				iter.ReportError("decode time.Duration", err.Error())
				return
			}

			*(*time.Duration)(ptr) = d
		case jsoniter.NumberValue:
			*(*time.Duration)(ptr) = time.Duration(iter.ReadInt64())
		default:
			iter.ReportError("decode time.Duration", "expected a string or a number")
		}
	})
}

// Load decodes a JSON document on top of Default(). Fields absent in the document keep
// their default values.
func Load(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := json.NewDecoder(r).Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	return cfg, nil
}

// LoadTOML is the same as Load, but the document is TOML. Durations are accepted in the
// same two forms.
func LoadTOML(r io.Reader) (*Config, error) {
	cfg := Default()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	return cfg, nil
}

// LoadFile reads the config from the file by the path. Files with the .toml extension
// are decoded as TOML, everything else as JSON.
func LoadFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	defer file.Close()

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return LoadTOML(file)
	}

	return Load(file)
}
