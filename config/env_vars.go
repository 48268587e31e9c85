// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	minQuotedValueLength = 2
)

var (
	errExpectedPointerToStruct = errors.New("expected a pointer to a struct")
	errUnsupportedSliceType    = errors.New("unsupported slice type")
	errUnsupportedFieldType    = errors.New("unsupported field type")

	durationType = reflect.TypeOf(time.Duration(0))
)

// readEnv populates the struct pointed to by spec from environment variables
// named in `env:"NAME[,overwrite]"` tags.
//
// Without overwrite, a variable only fills a field that is still zero. Untagged
// struct fields are walked recursively; `env:"-"` skips a field entirely.
func readEnv(spec any) error {
	structValue := reflect.ValueOf(spec)
	if structValue.Kind() != reflect.Ptr {
		return fmt.Errorf("%w, got %s", errExpectedPointerToStruct, structValue.Kind())
	}

	structValue = structValue.Elem()
	if structValue.Kind() != reflect.Struct {
		return fmt.Errorf("%w, got a pointer to %s", errExpectedPointerToStruct, structValue.Kind())
	}

	structType := structValue.Type()

	for fieldIndex := range structValue.NumField() {
		field := structValue.Field(fieldIndex)
		fieldType := structType.Field(fieldIndex)

		if !fieldType.IsExported() {
			continue
		}

		tag := fieldType.Tag.Get("env")

		switch {
		case tag == "-":
			continue
		case tag == "":
			if field.Kind() == reflect.Struct {
				if err := readEnv(field.Addr().Interface()); err != nil {
					return err
				}
			}

			continue
		}

		parts := strings.Split(tag, ",")
		envVarName := parts[0]
		overwrite := slices.Contains(parts[1:], "overwrite")

		envValue, exists := os.LookupEnv(envVarName)
		if !exists || !field.CanSet() {
			continue
		}

		if !overwrite && !field.IsZero() {
			continue
		}

		if err := setFieldValue(field, fieldType.Name, envVarName, envValue); err != nil {
			return err
		}
	}

	return nil
}

// setFieldValue parses envValue according to the field's kind and stores it.
func setFieldValue(field reflect.Value, fieldName, envVarName, envValue string) error {
	wrap := func(kind string, err error) error {
		return fmt.Errorf("failed to parse %s for %s from env var %s (%s): %w",
			kind, fieldName, envVarName, envValue, err)
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(envValue)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == durationType {
			d, err := time.ParseDuration(envValue)
			if err != nil {
				return wrap("duration", err)
			}

			field.SetInt(int64(d))

			return nil
		}

		n, err := strconv.ParseInt(envValue, 10, 64)
		if err != nil {
			return wrap("int", err)
		}

		field.SetInt(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(envValue, 64)
		if err != nil {
			return wrap("float", err)
		}

		field.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(envValue)
		if err != nil {
			return wrap("bool", err)
		}

		field.SetBool(b)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("%w for field %s", errUnsupportedSliceType, fieldName)
		}

		values := []string{}

		for value := range strings.SplitSeq(envValue, ",") {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				values = append(values, trimmed)
			}
		}

		field.Set(reflect.ValueOf(values))
	default:
		return fmt.Errorf("%w for field %s: %s", errUnsupportedFieldType, fieldName, field.Kind())
	}

	return nil
}

// useDotEnv loads environment variables from a .env file, checking
// the current working directory, then the directory of the binary.
//
// A missing .env file in either location is not an error.
func useDotEnv() error {
	if cwd, err := os.Getwd(); err != nil {
		log.Warn().Err(err).Msg("Could not get current working directory")
	} else if loaded, err := tryLoadDotEnv(filepath.Join(cwd, ".env")); loaded || err != nil {
		return err
	}

	dir := "."
	if exe, err := os.Executable(); err == nil {
		dir = filepath.Dir(exe)
	}

	_, err := tryLoadDotEnv(filepath.Join(dir, ".env"))

	return err
}

// tryLoadDotEnv parses a .env file and sets every variable that is not
// already present in the environment.
//
// It reports whether the file existed. Unreadable files are logged and skipped.
func tryLoadDotEnv(envPath string) (bool, error) {
	data, err := os.ReadFile(envPath) // #nosec G304 -- path is cwd or binary dir
	if os.IsNotExist(err) {
		log.Debug().Str("path", envPath).Msg("No .env file found, skipping")

		return false, nil
	}

	if err != nil {
		log.Warn().Err(err).Str("path", envPath).Msg("Could not read .env file")

		return false, nil
	}

	for lineNumber, rawLine := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			log.Warn().
				Str("path", envPath).
				Int("line", lineNumber+1).
				Msg("Invalid format in .env file")

			continue
		}

		key, value = strings.TrimSpace(key), unquote(strings.TrimSpace(value))

		if _, set := os.LookupEnv(key); set {
			continue
		}

		if err := os.Setenv(key, value); err != nil {
			return true, fmt.Errorf("could not set %s from %s: %w", key, envPath, err)
		}
	}

	log.Info().Str("path", envPath).Msg("Loaded configuration from .env file")

	return true, nil
}

// unquote strips one pair of matching single or double quotes.
func unquote(value string) string {
	if len(value) >= minQuotedValueLength && value[0] == value[len(value)-1] && (value[0] == '"' || value[0] == '\'') {
		return value[1 : len(value)-1]
	}

	return value
}
