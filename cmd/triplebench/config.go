// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dice-group/triplebench/groundtruth"
	"github.com/dice-group/triplebench/validate"
)

func StringEnv(key string, def string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	return value
}

func IntEnv(key string, def int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		Logger.Warnf("ignoring %s=%q: %v", key, value, err)
		return def
	}
	return parsed
}

func FloatEnv(key string, def float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		Logger.Warnf("ignoring %s=%q: %v", key, value, err)
		return def
	}
	return parsed
}

// loadDotEnv loads the .env file in dir if there is one. Variables
// already set in the environment win.
func loadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	Logger.Debugf("loaded %s", path)
	return nil
}

// baseDir resolves the directory that holds raw_data, data, and
// output. The --base-dir flag wins over TRIPLEBENCH_BASE_DIR, which
// wins over the working directory. The .env files of the working
// directory and the base directory are loaded on the way.
func baseDir(cmd *cobra.Command) (string, error) {
	if err := loadDotEnv("."); err != nil {
		return "", err
	}
	dir, _ := cmd.Flags().GetString("base-dir")
	if !cmd.Flags().Changed("base-dir") {
		dir = StringEnv("TRIPLEBENCH_BASE_DIR", ".")
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	if st, err := os.Stat(dir); err != nil {
		return "", err
	} else if !st.IsDir() {
		return "", fmt.Errorf("base directory %s is not a directory", dir)
	}
	if err := loadDotEnv(dir); err != nil {
		return "", err
	}
	return dir, nil
}

// addPolicyFlags adds the flags of the ground truth and validation
// settings to cmd. Their defaults come from the environment when
// the command runs.
func addPolicyFlags(cmd *cobra.Command) {
	cmd.Flags().String("reference", groundtruth.DefaultConfig.Reference, "reference triplestore of the ground truth (env TRIPLEBENCH_REFERENCE)")
	cmd.Flags().String("under-test", groundtruth.DefaultConfig.UnderTest, "triplestore family under test (env TRIPLEBENCH_UNDER_TEST)")
	cmd.Flags().Float64("rtol", validate.DefaultPolicy.Tolerance.RTol, "relative tolerance of result sizes (env TRIPLEBENCH_RTOL)")
	cmd.Flags().Int64("small-max", validate.DefaultPolicy.SmallMax, "largest result checked exactly (env TRIPLEBENCH_SMALL_MAX)")
}

// policy resolves the ground truth configuration and the validation
// policy from the flags of cmd and the environment.
func policy(cmd *cobra.Command) (groundtruth.Config, validate.Policy, error) {
	flags := cmd.Flags()
	cfg := groundtruth.DefaultConfig
	cfg.Reference, _ = flags.GetString("reference")
	if !flags.Changed("reference") {
		cfg.Reference = StringEnv("TRIPLEBENCH_REFERENCE", cfg.Reference)
	}
	cfg.UnderTest, _ = flags.GetString("under-test")
	if !flags.Changed("under-test") {
		cfg.UnderTest = StringEnv("TRIPLEBENCH_UNDER_TEST", cfg.UnderTest)
	}

	p := validate.DefaultPolicy
	p.Tolerance.RTol, _ = flags.GetFloat64("rtol")
	if !flags.Changed("rtol") {
		p.Tolerance.RTol = FloatEnv("TRIPLEBENCH_RTOL", p.Tolerance.RTol)
	}
	p.SmallMax, _ = flags.GetInt64("small-max")
	if !flags.Changed("small-max") {
		p.SmallMax = int64(IntEnv("TRIPLEBENCH_SMALL_MAX", int(p.SmallMax)))
	}
	if p.Tolerance.RTol < 0 {
		return cfg, p, fmt.Errorf("negative relative tolerance %v", p.Tolerance.RTol)
	}
	if p.SmallMax < p.SmallMin {
		return cfg, p, fmt.Errorf("small result range [%d, %d] is empty", p.SmallMin, p.SmallMax)
	}
	return cfg, p, nil
}

// parameters describes cfg and p for the database export.
func parameters(cfg groundtruth.Config, p validate.Policy) map[string]string {
	return map[string]string{
		"reference":  cfg.Reference,
		"under_test": cfg.UnderTest,
		"rtol":       strconv.FormatFloat(p.Tolerance.RTol, 'g', -1, 64),
		"atol":       strconv.FormatFloat(p.Tolerance.ATol, 'g', -1, 64),
		"small_min":  strconv.FormatInt(p.SmallMin, 10),
		"small_max":  strconv.FormatInt(p.SmallMax, 10),
	}
}
