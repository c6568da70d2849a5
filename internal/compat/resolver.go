package compat

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/goccy/go-json"
)

// OIMLDependency is the compat-map key holding the OIML schema version range
const OIMLDependency = "oiml"

// Candidate describes one template version's own compat ranges, surfaced
// when resolution fails so the caller can see why nothing matched
type Candidate struct {
	TemplateVersion string            `json:"template_version"`
	Compat          map[string]string `json:"compat"`
}

// Resolution is the structured outcome of a compatibility query. An
// incompatible result is data, not an error: the caller can act on it.
type Resolution struct {
	Compatible bool `json:"compatible"`

	// Set when compatible
	Framework       string            `json:"framework,omitempty"`
	Category        string            `json:"category,omitempty"`
	TemplatePack    string            `json:"template_pack,omitempty"`
	TemplateVersion string            `json:"template_version,omitempty"`
	Digest          string            `json:"digest,omitempty"`
	Compat          map[string]string `json:"compat,omitempty"`
	BreakingChanges []string          `json:"breaking_changes,omitempty"`

	// Set when incompatible
	Reason              string      `json:"error,omitempty"`
	AvailableFrameworks []string    `json:"available_frameworks,omitempty"`
	Candidates          []Candidate `json:"available_template_versions,omitempty"`
}

// Resolver answers compatibility queries against a loaded matrix. It is
// stateless apart from the matrix reference and safe for concurrent use.
type Resolver struct {
	matrix *Matrix
}

// NewResolver creates a resolver over the given matrix
func NewResolver(matrix *Matrix) *Resolver {
	return &Resolver{matrix: matrix}
}

// Resolve finds the template pack compatible with both the OIML schema
// version and the installed framework version. Category narrows the
// search when non-empty.
//
// Among the matching candidates the last one in matrix declaration order
// wins; the versions list is not re-sorted. Matrix files are expected to
// list versions in ascending order, which makes "last" also "newest".
// An error is returned only for a malformed matrix (bad version or range
// syntax); every user-actionable outcome is in the Resolution.
func (r *Resolver) Resolve(oimlVersion, framework, frameworkVersion, category string) (*Resolution, error) {
	entries := r.matrix.Entries(framework, category)
	if len(entries) == 0 {
		return &Resolution{
			Compatible:          false,
			Reason:              fmt.Sprintf("framework %q not found in compatibility matrix", framework),
			AvailableFrameworks: r.matrix.Frameworks(),
		}, nil
	}

	type match struct {
		entry   Entry
		version TemplateVersion
	}
	var matches []match
	var candidates []Candidate

	for _, entry := range entries {
		for _, tv := range entry.Versions {
			candidates = append(candidates, Candidate{
				TemplateVersion: tv.TemplateVersion,
				Compat:          tv.Compat,
			})

			ok, err := satisfiesDependency(oimlVersion, tv.Compat[OIMLDependency])
			if err != nil {
				return nil, fmt.Errorf("matrix entry %s/%s template %s: %w",
					entry.Framework, entry.Category, tv.TemplateVersion, err)
			}
			if !ok {
				continue
			}

			ok, err = satisfiesDependency(frameworkVersion, tv.Compat[framework])
			if err != nil {
				return nil, fmt.Errorf("matrix entry %s/%s template %s: %w",
					entry.Framework, entry.Category, tv.TemplateVersion, err)
			}
			if !ok {
				continue
			}

			matches = append(matches, match{entry: entry, version: tv})
		}
	}

	if len(matches) == 0 {
		return &Resolution{
			Compatible: false,
			Reason: fmt.Sprintf("no template compatible with oiml %s and %s %s",
				oimlVersion, framework, frameworkVersion),
			Candidates: candidates,
		}, nil
	}

	selected := matches[len(matches)-1]
	digest, err := entryDigest(selected.version)
	if err != nil {
		return nil, err
	}

	return &Resolution{
		Compatible:      true,
		Framework:       selected.entry.Framework,
		Category:        selected.entry.Category,
		TemplatePack:    selected.version.PackName,
		TemplateVersion: selected.version.TemplateVersion,
		Digest:          digest,
		Compat:          selected.version.Compat,
		BreakingChanges: selected.version.BreakingChanges,
	}, nil
}

// satisfiesDependency checks a version against a compat range, treating a
// missing range as unconstrained (">=0.0.0")
func satisfiesDependency(version, rangeExpr string) (bool, error) {
	if rangeExpr == "" {
		rangeExpr = ">=0.0.0"
	}
	return Satisfies(version, rangeExpr)
}

// entryDigest derives an integrity token from the selected matrix entry:
// sha256 over its canonical JSON, tagged and truncated the same way as
// document identifiers.
func entryDigest(tv TemplateVersion) (string, error) {
	raw, err := json.Marshal(tv)
	if err != nil {
		return "", fmt.Errorf("digest matrix entry: %w", err)
	}
	sum := sha256.Sum256(raw)
	return "sha256:" + hex.EncodeToString(sum[:])[:16], nil
}
