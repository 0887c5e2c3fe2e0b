package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"abacus/internal/diag"
	"abacus/internal/source"
)

// ListExpressionFiles возвращает отсортированный список всех *.abx файлов
// в директории.
func ListExpressionFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".abx") {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// EvaluateFiles вычисляет несколько файлов параллельно. Файл, который не
// удалось прочитать, получает IOReadFailed-диагностику в свой Bag и не
// прерывает остальные. Порядок результатов совпадает с порядком paths.
func EvaluateFiles(ctx context.Context, paths []string, opts Options, jobs int) ([]*FileResult, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	// FileSet не потокобезопасен: загружаем файлы заранее, горутины только читают
	fileSet := source.NewFileSet()
	fileIDs := make(map[string]source.FileID, len(paths))
	loadErrors := make(map[string]error, len(paths))

	for _, path := range paths {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			// Пустой файл-заглушка, чтобы спан диагностики указывал на сам путь
			fileIDs[path] = fileSet.AddVirtual(path, nil)
			continue
		}
		fileIDs[path] = fileID
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]*FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func(i int, path string) func() error {
			return func() error {
				// Проверка отмены
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				if loadErr, hadError := loadErrors[path]; hadError {
					bag := diag.NewBag(opts.MaxDiagnostics)
					bag.Add(diag.Diagnostic{
						Severity: diag.SevError,
						Code:     diag.IOReadFailed,
						Message:  "failed to read file: " + loadErr.Error(),
						Primary:  source.Span{File: fileIDs[path]},
					})
					results[i] = &FileResult{Path: path, FileSet: fileSet, File: fileSet.Get(fileIDs[path]), Bag: bag}
					return nil
				}

				file := fileSet.Get(fileIDs[path])
				results[i] = evaluateFileLines(fileSet, file, opts, nil)
				return nil
			}
		}(i, path))
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
