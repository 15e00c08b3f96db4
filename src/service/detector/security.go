package detector

import (
	"regexp"

	"codeinsight/src/model"
)

// SecurityDetector detects security anti-patterns with a fixed rule table
type SecurityDetector struct {
	rules []lineRule
}

// NewSecurityDetector creates a new security detector
func NewSecurityDetector() *SecurityDetector {
	return &SecurityDetector{rules: securityRules}
}

// Name returns the detector name
func (d *SecurityDetector) Name() string {
	return "security"
}

// Detect runs security detection on a single source unit
func (d *SecurityDetector) Detect(unit model.SourceUnit) []model.Issue {
	return scanLines(unit, d.rules)
}

var securityRules = []lineRule{
	{
		pattern:    regexp.MustCompile(`(?i)(?:query|execute|exec)\s*\([^)]*["'` + "`" + `]\s*\+|["'` + "`" + `][^"'` + "`" + `]*(?:SELECT\s|INSERT\s+INTO|UPDATE\s|DELETE\s+FROM)[^"'` + "`" + `]*["'` + "`" + `]\s*\+`),
		title:      "Potential SQL injection via string concatenation",
		descr:      "A SQL statement is assembled by concatenating untrusted values into the query text",
		severity:   model.SeverityCritical,
		suggestion: "Use parameterized queries or prepared statements instead of string concatenation",
		impact:     "Attackers can read or modify arbitrary database contents",
		effort:     model.EffortMedium,
		issueType:  model.TypeSecurity,
	},
	{
		pattern:    regexp.MustCompile(`\.innerHTML\s*=|document\.write\s*\(|dangerouslySetInnerHTML`),
		title:      "Unsanitized HTML sink",
		descr:      "Content is written into the DOM without sanitization",
		severity:   model.SeverityHigh,
		suggestion: "Use textContent, or sanitize the value before inserting it into the DOM",
		impact:     "Cross-site scripting if the value contains attacker-controlled markup",
		effort:     model.EffortLow,
		issueType:  model.TypeSecurity,
	},
	{
		pattern:    regexp.MustCompile(`(?i)(?:password|passwd|secret|api[_-]?key|auth[_-]?token|access[_-]?token)\s*[:=]\s*["'` + "`" + `][^"'` + "`" + `]{4,}["'` + "`" + `]`),
		title:      "Hardcoded secret literal",
		descr:      "A credential-like value is embedded directly in source code",
		severity:   model.SeverityCritical,
		suggestion: "Move the secret to an environment variable or a secret manager",
		impact:     "Anyone with repository access can read the credential",
		effort:     model.EffortLow,
		issueType:  model.TypeSecurity,
	},
	{
		pattern:    regexp.MustCompile(`(?i)Math\.random\s*\(\s*\).{0,60}(?:token|secret|password|key|session|auth)|(?:token|secret|password|key|session|auth).{0,60}Math\.random\s*\(\s*\)`),
		title:      "Insecure randomness in security context",
		descr:      "A non-cryptographic PRNG is used to produce a security-sensitive value",
		severity:   model.SeverityHigh,
		suggestion: "Use a cryptographically secure random source (crypto.randomBytes, secrets, crypto/rand)",
		impact:     "Predictable tokens allow session or credential guessing",
		effort:     model.EffortLow,
		issueType:  model.TypeSecurity,
	},
	{
		pattern:    regexp.MustCompile(`(?i)(?:readFile|readFileSync|writeFile|createReadStream|sendFile|open)\s*\([^)]*(?:req\.|request\.|params|query\[|body\.)`),
		title:      "Path traversal risk in file access",
		descr:      "A filesystem path is constructed from request-controlled input",
		severity:   model.SeverityHigh,
		suggestion: "Resolve and validate the path against an allowed base directory before use",
		impact:     "Attackers may read or write files outside the intended directory",
		effort:     model.EffortMedium,
		issueType:  model.TypeSecurity,
	},
	{
		pattern:    regexp.MustCompile(`(?i)(?:\bexec|execSync|spawnSync|system|popen|eval)\s*\([^)]*(?:\+|\$\{|%s|\bformat\b)`),
		title:      "Command injection via dynamic execution",
		descr:      "A shell command or eval target is assembled from dynamic values",
		severity:   model.SeverityCritical,
		suggestion: "Pass arguments as an array and avoid shell interpolation; never eval untrusted input",
		impact:     "Arbitrary command execution on the host",
		effort:     model.EffortMedium,
		issueType:  model.TypeSecurity,
	},
}
