package whisper

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const DefaultModel = "base"

var ErrChecksumMismatch = errors.New("model checksum mismatch")

type Model struct {
	Name     string
	FileName string
	SHA256   string
}

type ResolvedModel struct {
	Name         string
	Path         string
	SHA256       string
	Present      bool
	IsCustomPath bool
}

var registry = map[string]Model{
	"tiny": {
		Name:     "tiny",
		FileName: "ggml-tiny.bin",
		SHA256:   "be07e048e1e599ad46341c8d2a135645097a538221678b7acdd1b1919c6e1b21",
	},
	"tiny.en": {
		Name:     "tiny.en",
		FileName: "ggml-tiny.en.bin",
		SHA256:   "921e4cf8686fdd993dcd081a5da5b6c365bfde1162e72b08d75ac75289920b1f",
	},
	"base": {
		Name:     "base",
		FileName: "ggml-base.bin",
		SHA256:   "60ed5bc3dd14eea856493d334349b405782ddcaf0028d4b5df4088345fba2efe",
	},
	"base.en": {
		Name:     "base.en",
		FileName: "ggml-base.en.bin",
		SHA256:   "a03779c86df3323075f5e796cb2ce5029f00ec8869eee3fdfb897afe36c6d002",
	},
	"small": {
		Name:     "small",
		FileName: "ggml-small.bin",
		SHA256:   "1be3a9b2063867b937e64e2ec7483364a79917e157fa98c5d94b5c1fffea987b",
	},
	"small.en": {
		Name:     "small.en",
		FileName: "ggml-small.en.bin",
		SHA256:   "c6138d6d58ecc8322097e0f987c32f1be8bb0a18532a3f88f734d1bbf9c41e5d",
	},
	"medium": {
		Name:     "medium",
		FileName: "ggml-medium.bin",
		SHA256:   "6c14d5adee5f86394037b4e4e8b59f1673b6cee10e3cf0b11bbdbee79c156208",
	},
	"large-v3": {
		Name:     "large-v3",
		FileName: "ggml-large-v3.bin",
		SHA256:   "64d182b440b98d5203c4f9bd541544d84c605196c4f7b845dfa11fb23594d1e2",
	},
}

func ModelNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func LookupModel(name string) (Model, bool) {
	model, ok := registry[name]
	return model, ok
}

// InspectModel reports where a named model would live in modelDir and whether
// the file is there. It never fetches anything.
func InspectModel(name, modelDir string) (ResolvedModel, error) {
	model, ok := LookupModel(name)
	if !ok {
		return ResolvedModel{}, fmt.Errorf("unknown model %q (known models: %s)", name, strings.Join(ModelNames(), ", "))
	}
	if strings.TrimSpace(modelDir) == "" {
		return ResolvedModel{}, errors.New("model directory must not be empty for named model")
	}

	modelPath := filepath.Join(modelDir, model.FileName)
	info, err := os.Stat(modelPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return ResolvedModel{}, fmt.Errorf("stat model path: %w", err)
	}

	return ResolvedModel{
		Name:    model.Name,
		Path:    modelPath,
		SHA256:  model.SHA256,
		Present: err == nil && !info.IsDir(),
	}, nil
}

// ResolveModel turns a model name or file path into a local model file. Named
// models must already be present in modelDir.
func ResolveModel(modelRef, modelDir string) (ResolvedModel, error) {
	if strings.TrimSpace(modelRef) == "" {
		modelRef = DefaultModel
	}

	if _, ok := LookupModel(modelRef); ok {
		resolved, err := InspectModel(modelRef, modelDir)
		if err != nil {
			return ResolvedModel{}, err
		}
		if !resolved.Present {
			return ResolvedModel{}, fmt.Errorf("model %q not found at %s; place %s there or pass a model file path", resolved.Name, resolved.Path, filepath.Base(resolved.Path))
		}
		return resolved, nil
	}

	if !looksLikePath(modelRef) {
		return ResolvedModel{}, fmt.Errorf("unknown model %q (known models: %s)", modelRef, strings.Join(ModelNames(), ", "))
	}

	customPath := filepath.Clean(modelRef)
	if _, err := os.Stat(customPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ResolvedModel{}, fmt.Errorf("custom model path does not exist: %s", customPath)
		}
		return ResolvedModel{}, fmt.Errorf("stat custom model path: %w", err)
	}

	return ResolvedModel{
		Path:         customPath,
		Present:      true,
		IsCustomPath: true,
	}, nil
}

// VerifyModel compares the SHA-256 of the file at path with expected. An empty
// expected digest always passes.
func VerifyModel(path, expected string) error {
	expected = strings.ToLower(strings.TrimSpace(expected))
	if expected == "" {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open model for checksum: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return fmt.Errorf("hash model: %w", err)
	}

	actual := hex.EncodeToString(h.Sum(nil))
	if actual != expected {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksumMismatch, expected, actual)
	}
	return nil
}

func looksLikePath(input string) bool {
	return strings.ContainsRune(input, os.PathSeparator) || strings.HasSuffix(strings.ToLower(input), ".bin")
}
