package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
)

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addExpressionSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.abx файлы
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".abx" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
	if err != nil {
		return
	}
}

// addExpressionSeeds seeds the corpus with hand-picked expressions covering
// every operator, both error families and the known edge cases.
func addExpressionSeeds(f *testing.F) {
	seeds := []string{
		"",
		"42",
		"0.1 + 0.2",
		"(5 + 8) * 2",
		"-2^2",
		"2^3^2",
		"1 / 0",
		"1 / 3",
		"10 / 8",
		"5 + ",
		"(5 + 3",
		"()",
		"5 $ 3",
		"5 + .",
		".5 + 5.",
		"--7",
		"2 - -3",
		"9^999999",
		"((((((((1))))))))",
		"1 + 1 + 1 + 1 + 1 + 1 + 1 + 1",
		"007 * 1.000",
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
