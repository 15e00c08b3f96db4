// Package source supplies SourceUnits to the analysis pipeline from a
// local directory tree, applying include/exclude filtering and the
// recognized-extension contract.
package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"codeinsight/src/config"
	"codeinsight/src/model"
	"codeinsight/src/util"
)

// Provider loads source units from the filesystem
type Provider struct {
	cfg config.AnalyzerConfig
}

// NewProvider creates a new filesystem source provider
func NewProvider(cfg config.AnalyzerConfig) *Provider {
	return &Provider{cfg: cfg}
}

// Load walks the tree rooted at root and returns one SourceUnit per
// qualifying file. Files with unrecognized extensions, files over the
// configured size cap, and excluded paths are skipped silently.
func (p *Provider) Load(root string) ([]model.SourceUnit, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading source root: %w", err)
	}

	if !info.IsDir() {
		unit, err := p.loadFile(root, filepath.Base(root))
		if err != nil {
			return nil, nil
		}
		return []model.SourceUnit{unit}, nil
	}

	var units []model.SourceUnit
	skipped := 0

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			util.Warn("Skipping %s: %v", path, err)
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if p.excluded(rel + "/") {
				return filepath.SkipDir
			}
			return nil
		}

		if p.excluded(rel) || !p.included(rel) {
			skipped++
			return nil
		}

		unit, loadErr := p.loadFile(path, rel)
		if loadErr != nil {
			skipped++
			return nil
		}

		units = append(units, unit)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking source tree: %w", err)
	}

	util.Info("Loaded %d source files from %s (%d skipped)", len(units), root, skipped)
	return units, nil
}

func (p *Provider) loadFile(path, rel string) (model.SourceUnit, error) {
	lang, ok := model.LanguageForPath(rel)
	if !ok {
		return model.SourceUnit{}, model.ErrUnsupportedFile
	}

	info, err := os.Stat(path)
	if err != nil {
		return model.SourceUnit{}, err
	}
	if p.cfg.MaxFileSizeBytes > 0 && info.Size() > int64(p.cfg.MaxFileSizeBytes) {
		util.Debug("Skipping oversized file %s (%d bytes)", rel, info.Size())
		return model.SourceUnit{}, fmt.Errorf("file exceeds size cap: %s", rel)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		util.Warn("Failed to read %s: %v", rel, err)
		return model.SourceUnit{}, err
	}

	return model.NewSourceUnit(rel, string(data), lang), nil
}

func (p *Provider) excluded(rel string) bool {
	for _, pattern := range p.cfg.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func (p *Provider) included(rel string) bool {
	if len(p.cfg.Include) == 0 {
		return true
	}
	for _, pattern := range p.cfg.Include {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
