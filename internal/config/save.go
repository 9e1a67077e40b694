package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func Validate(s Settings) error {
	var errs []string

	if s.Batch.SaveEveryN <= 0 {
		errs = append(errs, "batch.save_every_n must be > 0")
	}
	if s.Batch.JitterMinMS < 0 || s.Batch.JitterMaxMS < s.Batch.JitterMinMS {
		errs = append(errs, "batch jitter bounds must satisfy 0 <= min <= max")
	}
	if s.Oracle.RequestsPerWindow <= 0 {
		errs = append(errs, "oracle.requests_per_window must be > 0")
	}
	if s.Oracle.WindowSeconds <= 0 {
		errs = append(errs, "oracle.window_seconds must be > 0")
	}
	if s.Oracle.MaxRetries <= 0 {
		errs = append(errs, "oracle.max_retries must be > 0")
	}
	if s.Output.Database == "" {
		errs = append(errs, "output.database is required")
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + joinLines(errs))
	}
	return nil
}

func SaveAtomic(path string, s Settings) error {
	if err := Validate(s); err != nil {
		return err
	}

	b, err := yaml.Marshal(&s)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	bak := path + ".bak"

	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}

	_ = os.Remove(bak)
	_ = os.Rename(path, bak)

	return os.Rename(tmp, path)
}

func joinLines(lines []string) string {
	out := ""
	for i, s := range lines {
		if i > 0 {
			out += "\n- "
		}
		out += fmt.Sprint(s)
	}
	return out
}
