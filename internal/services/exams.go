package services

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ExamService reads the filesystem-backed exam library laid out as
// provider/exam/*.txt. The library is read-only reference material, not
// owned by this service.
type ExamService struct {
	basePath string
}

func NewExamService(basePath string) *ExamService {
	return &ExamService{basePath: basePath}
}

// ListAvailable enumerates providers and their exams.
func (s *ExamService) ListAvailable() map[string][]string {
	structure := make(map[string][]string)

	providers, err := os.ReadDir(s.basePath)
	if err != nil {
		return structure
	}
	for _, provider := range providers {
		if !provider.IsDir() {
			continue
		}
		examDirs, err := os.ReadDir(filepath.Join(s.basePath, provider.Name()))
		if err != nil {
			continue
		}
		var exams []string
		for _, exam := range examDirs {
			if exam.IsDir() {
				exams = append(exams, exam.Name())
			}
		}
		if len(exams) > 0 {
			sort.Strings(exams)
			structure[provider.Name()] = exams
		}
	}
	return structure
}

// Autoload finds an exam directory by name (case-insensitive, with a
// trailing parenthesized suffix ignored) and returns the content of its
// first .txt file.
func (s *ExamService) Autoload(examName string) (content, filename string, err error) {
	searchName := strings.ToUpper(strings.TrimSpace(strings.SplitN(examName, "(", 2)[0]))

	providers, readErr := os.ReadDir(s.basePath)
	if readErr != nil {
		return "", "", fmt.Errorf("exam %q %w", examName, ErrNotFound)
	}

	for _, provider := range providers {
		if !provider.IsDir() {
			continue
		}
		providerPath := filepath.Join(s.basePath, provider.Name())
		examDirs, readErr := os.ReadDir(providerPath)
		if readErr != nil {
			continue
		}
		for _, examDir := range examDirs {
			if !examDir.IsDir() {
				continue
			}
			name := strings.ToUpper(examDir.Name())
			if name != strings.ToUpper(examName) && name != searchName {
				continue
			}
			examPath := filepath.Join(providerPath, examDir.Name())
			files, readErr := os.ReadDir(examPath)
			if readErr != nil {
				continue
			}
			for _, f := range files {
				if f.IsDir() || !strings.HasSuffix(f.Name(), ".txt") {
					continue
				}
				data, readErr := os.ReadFile(filepath.Join(examPath, f.Name()))
				if readErr != nil {
					return "", "", readErr
				}
				return string(data), f.Name(), nil
			}
		}
	}
	return "", "", fmt.Errorf("exam %q %w", examName, ErrNotFound)
}
