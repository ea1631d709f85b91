package util

import (
	"regexp"
	"strings"
)

// skillVocabulary is the fixed set of technology terms recognized in job
// text. Order matters: extraction preserves vocabulary order of first match.
var skillVocabulary = []string{
	// Programming languages
	"Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Ruby", "PHP",
	"Go", "Rust", "Swift", "Kotlin", "Scala", "R", "MATLAB", "Perl",

	// Frontend
	"React", "Angular", "Vue", "Vue.js", "Svelte", "Next.js", "Nuxt.js",
	"HTML", "CSS", "SASS", "SCSS", "Tailwind", "Bootstrap", "jQuery",

	// Backend
	"Node.js", "Express", "Django", "Flask", "FastAPI", "Spring", "Spring Boot",
	"ASP.NET", ".NET", "Rails", "Laravel", "Symfony",

	// Databases
	"SQL", "MySQL", "PostgreSQL", "MongoDB", "Redis", "Elasticsearch",
	"Cassandra", "DynamoDB", "Oracle", "SQLite", "MariaDB",

	// Cloud and devops
	"AWS", "Azure", "GCP", "Google Cloud", "Docker", "Kubernetes", "K8s",
	"Jenkins", "GitLab", "CircleCI", "Travis CI", "Terraform", "Ansible",

	// Data and AI
	"Machine Learning", "ML", "Deep Learning", "AI", "TensorFlow", "PyTorch",
	"Keras", "Scikit-learn", "Pandas", "NumPy", "Data Science", "Big Data",
	"Spark", "Hadoop", "Airflow",

	// Mobile
	"React Native", "Flutter", "iOS", "Android",

	// Other
	"Git", "GitHub", "REST API", "GraphQL", "Microservices", "Agile", "Scrum",
	"DevOps", "CI/CD", "Linux", "Unix", "Bash", "PowerShell",
	"Jira", "Confluence", "Figma", "Adobe XD",
}

var skillPatterns = compileSkillPatterns()

func compileSkillPatterns() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(skillVocabulary))
	for i, skill := range skillVocabulary {
		out[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(skill)) + `\b`)
	}
	return out
}

// ExtractSkills matches the fixed vocabulary against text using whole-token,
// case-insensitive matching. Results keep vocabulary order, carry no
// case-insensitive duplicates and are capped at maxSkills.
func ExtractSkills(text string, maxSkills int) []string {
	lower := strings.ToLower(text)

	seen := make(map[string]bool, maxSkills)
	var found []string
	for i, re := range skillPatterns {
		if !re.MatchString(lower) {
			continue
		}
		key := strings.ToLower(skillVocabulary[i])
		if seen[key] {
			continue
		}
		seen[key] = true
		found = append(found, skillVocabulary[i])
		if maxSkills > 0 && len(found) >= maxSkills {
			break
		}
	}
	return found
}

// MergeSkills unions skill groups in order, dropping blank entries and
// case-insensitive duplicates, capped at maxSkills. Adapters use it to
// combine source-provided tags with vocabulary extraction.
func MergeSkills(maxSkills int, groups ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, group := range groups {
		for _, s := range group {
			s = CleanText(s)
			if s == "" {
				continue
			}
			key := strings.ToLower(s)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, s)
			if maxSkills > 0 && len(out) >= maxSkills {
				return out
			}
		}
	}
	return out
}
