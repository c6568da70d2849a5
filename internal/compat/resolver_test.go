package compat

import (
	"strings"
	"testing"
)

func testMatrix() *Matrix {
	return NewMatrix([]Entry{
		{
			Framework: "prisma",
			Category:  "orm",
			Versions: []TemplateVersion{
				{
					TemplateVersion: "0.1.0",
					PackName:        "oiml-templates-prisma",
					Compat:          map[string]string{"oiml": ">=0.1.0 <0.2.0", "prisma": ">=5.0.0 <6.0.0"},
				},
				{
					TemplateVersion: "0.2.0",
					PackName:        "oiml-templates-prisma",
					Compat:          map[string]string{"oiml": ">=0.1.0 <1.0.0", "prisma": ">=6.0.0 <7.0.0"},
					BreakingChanges: []string{"renamed relation scalar fields"},
				},
			},
		},
		{
			Framework: "django",
			Category:  "orm",
			Versions: []TemplateVersion{
				{
					TemplateVersion: "1.0.0",
					PackName:        "oiml-templates-django",
					Compat:          map[string]string{"oiml": ">=0.1.0 <1.0.0", "django": ">=4.0.0 <6.0.0"},
				},
			},
		},
	})
}

func TestResolveCompatible(t *testing.T) {
	resolver := NewResolver(testMatrix())

	res, err := resolver.Resolve("0.1.0", "prisma", "6.19.0", "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if !res.Compatible {
		t.Fatalf("Resolve() not compatible: %s", res.Reason)
	}
	if res.TemplateVersion != "0.2.0" {
		t.Errorf("TemplateVersion = %q, want 0.2.0", res.TemplateVersion)
	}
	if res.TemplatePack != "oiml-templates-prisma" {
		t.Errorf("TemplatePack = %q", res.TemplatePack)
	}
	if !strings.HasPrefix(res.Digest, "sha256:") {
		t.Errorf("Digest = %q, want sha256: prefix", res.Digest)
	}
	if len(res.Digest) != len("sha256:")+16 {
		t.Errorf("Digest length = %d", len(res.Digest))
	}
	if len(res.BreakingChanges) != 1 {
		t.Errorf("BreakingChanges = %v", res.BreakingChanges)
	}
}

func TestResolveUnknownFramework(t *testing.T) {
	resolver := NewResolver(testMatrix())

	res, err := resolver.Resolve("0.1.0", "rails", "7.0.0", "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if res.Compatible {
		t.Fatal("Resolve() should not be compatible")
	}
	want := []string{"prisma", "django"}
	if len(res.AvailableFrameworks) != len(want) {
		t.Fatalf("AvailableFrameworks = %v, want %v", res.AvailableFrameworks, want)
	}
	for i, name := range want {
		if res.AvailableFrameworks[i] != name {
			t.Errorf("AvailableFrameworks[%d] = %q, want %q", i, res.AvailableFrameworks[i], name)
		}
	}
}

func TestResolveNoCompatibleVersion(t *testing.T) {
	resolver := NewResolver(testMatrix())

	// prisma 7.x is beyond every declared range
	res, err := resolver.Resolve("0.1.0", "prisma", "7.1.0", "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if res.Compatible {
		t.Fatal("Resolve() should not be compatible")
	}
	if len(res.Candidates) != 2 {
		t.Fatalf("Candidates = %v, want both prisma versions listed", res.Candidates)
	}
	if res.Candidates[0].TemplateVersion != "0.1.0" || res.Candidates[1].TemplateVersion != "0.2.0" {
		t.Errorf("Candidates out of declaration order: %v", res.Candidates)
	}
}

func TestResolveSelectsLastDeclaredMatch(t *testing.T) {
	// Both versions satisfy both ranges; declaration order decides, not
	// the parsed version numbers. The matrix deliberately lists the
	// numerically greater template first.
	matrix := NewMatrix([]Entry{
		{
			Framework: "prisma",
			Category:  "orm",
			Versions: []TemplateVersion{
				{
					TemplateVersion: "0.9.0",
					PackName:        "pack",
					Compat:          map[string]string{"oiml": ">=0.1.0 <1.0.0"},
				},
				{
					TemplateVersion: "0.2.0",
					PackName:        "pack",
					Compat:          map[string]string{"oiml": ">=0.1.0 <1.0.0"},
				},
			},
		},
	})

	res, err := NewResolver(matrix).Resolve("0.5.0", "prisma", "6.0.0", "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !res.Compatible {
		t.Fatalf("Resolve() not compatible: %s", res.Reason)
	}
	if res.TemplateVersion != "0.2.0" {
		t.Errorf("TemplateVersion = %q, want the last declared match 0.2.0", res.TemplateVersion)
	}
}

func TestResolveCategoryFilter(t *testing.T) {
	resolver := NewResolver(testMatrix())

	res, err := resolver.Resolve("0.1.0", "prisma", "6.19.0", "orm")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !res.Compatible || res.Category != "orm" {
		t.Errorf("Resolve() = %+v, want orm match", res)
	}

	res, err = resolver.Resolve("0.1.0", "prisma", "6.19.0", "api")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Compatible {
		t.Error("Resolve() should find nothing in category api")
	}
}

func TestResolveMissingFrameworkRangeDefaultsOpen(t *testing.T) {
	matrix := NewMatrix([]Entry{
		{
			Framework: "fastapi",
			Category:  "api",
			Versions: []TemplateVersion{
				{
					TemplateVersion: "1.0.0",
					PackName:        "pack",
					Compat:          map[string]string{"oiml": ">=0.1.0 <1.0.0"},
				},
			},
		},
	})

	res, err := NewResolver(matrix).Resolve("0.1.0", "fastapi", "99.0.0", "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !res.Compatible {
		t.Errorf("missing framework range should default to >=0.0.0: %s", res.Reason)
	}
}

func TestResolveMalformedRangeIsFatal(t *testing.T) {
	matrix := NewMatrix([]Entry{
		{
			Framework: "prisma",
			Versions: []TemplateVersion{
				{
					TemplateVersion: "1.0.0",
					PackName:        "pack",
					Compat:          map[string]string{"oiml": "^1.0.0"},
				},
			},
		},
	})

	if _, err := NewResolver(matrix).Resolve("1.0.0", "prisma", "6.0.0", ""); err == nil {
		t.Error("Resolve() should fail on unsupported range syntax in the matrix")
	}
}

func TestParseMatrix(t *testing.T) {
	raw := []byte(`[
		{
			"framework": "prisma",
			"category": "orm",
			"versions": [
				{
					"template_version": "0.1.0",
					"pack_name": "oiml-templates-prisma",
					"compat": {"oiml": ">=0.1.0 <0.2.0", "prisma": ">=6.0.0 <7.0.0"},
					"breaking_changes": []
				}
			]
		}
	]`)

	matrix, err := ParseMatrix(raw)
	if err != nil {
		t.Fatalf("ParseMatrix() error = %v", err)
	}
	if matrix.Len() != 1 {
		t.Errorf("Len() = %d", matrix.Len())
	}
	if got := matrix.Frameworks(); len(got) != 1 || got[0] != "prisma" {
		t.Errorf("Frameworks() = %v", got)
	}

	if _, err := ParseMatrix([]byte(`[{"category": "orm"}]`)); err == nil {
		t.Error("ParseMatrix() should reject entries without a framework")
	}
	if _, err := ParseMatrix([]byte(`not json`)); err == nil {
		t.Error("ParseMatrix() should reject malformed JSON")
	}
}
