package scanner

import (
	"regexp"

	"codeinsight/src/model"
)

// importExportPatterns holds one import and one export pattern per
// supported language family. Languages without an entry yield empty
// lists; that silent degradation is deliberate, not an error.
type importExportPatterns struct {
	importRe *regexp.Regexp
	exportRe *regexp.Regexp
}

var languagePatterns = map[model.Language]importExportPatterns{
	model.LangJavaScript: {
		importRe: regexp.MustCompile(`^\s*import\s+.*?from\s+['"]([^'"]+)['"]|require\(\s*['"]([^'"]+)['"]\s*\)`),
		exportRe: regexp.MustCompile(`^\s*export\s+(?:default\s+)?(?:async\s+)?(?:function|class|const|let|var)\s+(\w+)|^\s*module\.exports(?:\.(\w+))?`),
	},
	model.LangTypeScript: {
		importRe: regexp.MustCompile(`^\s*import\s+.*?from\s+['"]([^'"]+)['"]|require\(\s*['"]([^'"]+)['"]\s*\)`),
		exportRe: regexp.MustCompile(`^\s*export\s+(?:default\s+)?(?:abstract\s+)?(?:async\s+)?(?:function|class|const|let|var|interface|type|enum)\s+(\w+)`),
	},
	model.LangPython: {
		importRe: regexp.MustCompile(`^\s*(?:from\s+([\w.]+)\s+import|import\s+([\w.]+))`),
		exportRe: regexp.MustCompile(`^(?:def|class)\s+([A-Za-z]\w*)`),
	},
	model.LangGo: {
		importRe: regexp.MustCompile(`^\s*(?:import\s+)?(?:\w+\s+)?"([^"]+)"`),
		exportRe: regexp.MustCompile(`^func\s+(?:\([^)]*\)\s+)?([A-Z]\w*)|^type\s+([A-Z]\w*)`),
	},
	model.LangJava: {
		importRe: regexp.MustCompile(`^\s*import\s+(?:static\s+)?([\w.]+(?:\.\*)?);`),
		exportRe: regexp.MustCompile(`^\s*public\s+(?:final\s+|abstract\s+|static\s+)*(?:class|interface|enum|record)\s+(\w+)`),
	},
	model.LangRust: {
		importRe: regexp.MustCompile(`^\s*use\s+([\w:]+)`),
		exportRe: regexp.MustCompile(`^\s*pub\s+(?:fn|struct|enum|trait|mod)\s+(\w+)`),
	},
}

// extractImportsExports extracts import targets and exported names using
// the per-language pattern table
func extractImportsExports(lang model.Language, lines []string) (imports, exports []string) {
	patterns, ok := languagePatterns[lang]
	if !ok {
		return nil, nil
	}

	for _, line := range lines {
		if m := patterns.importRe.FindStringSubmatch(line); m != nil {
			if name := firstGroup(m); name != "" {
				imports = append(imports, name)
			}
		}
		if m := patterns.exportRe.FindStringSubmatch(line); m != nil {
			if name := firstGroup(m); name != "" {
				exports = append(exports, name)
			}
		}
	}
	return imports, exports
}

// firstGroup returns the first non-empty capture group of a match
func firstGroup(m []string) string {
	for _, g := range m[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}
