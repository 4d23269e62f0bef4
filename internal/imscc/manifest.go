package imscc

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Manifest is the resource listing of an IMSCC cartridge.
type Manifest struct {
	Identifier string
	Resources  []Resource
}

type Resource struct {
	Identifier   string
	Href         string
	Type         string
	Files        []string
	Dependencies []string // identifiers of referenced resources (e.g. bank files)
}

type imsManifest struct {
	XMLName    xml.Name      `xml:"manifest"`
	Identifier string        `xml:"identifier,attr"`
	Resources  []imsResource `xml:"resources>resource"`
}
type imsResource struct {
	Identifier   string          `xml:"identifier,attr"`
	Href         string          `xml:"href,attr"`
	Type         string          `xml:"type,attr"`
	Files        []imsFile       `xml:"file"`
	Dependencies []imsDependency `xml:"dependency"`
}
type imsFile struct {
	Href string `xml:"href,attr"`
}
type imsDependency struct {
	IdentifierRef string `xml:"identifierref,attr"`
}

// ParseManifest reads imsmanifest.xml from the archive.
func ParseManifest(a *Archive) (Manifest, error) {
	var data []byte
	var err error
	for _, p := range []string{"imsmanifest.xml", "manifest.xml"} {
		data, err = a.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return Manifest{}, fmt.Errorf("imsmanifest.xml not found")
	}

	var mf imsManifest
	if err := xml.Unmarshal(data, &mf); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}

	out := Manifest{Identifier: mf.Identifier}
	for _, r := range mf.Resources {
		res := Resource{
			Identifier: r.Identifier,
			Href:       r.Href,
			Type:       r.Type,
		}
		for _, f := range r.Files {
			res.Files = append(res.Files, f.Href)
		}
		for _, d := range r.Dependencies {
			res.Dependencies = append(res.Dependencies, d.IdentifierRef)
		}
		out.Resources = append(out.Resources, res)
	}
	return out, nil
}

// Assessments returns the quiz resources of the cartridge in manifest order.
func (m Manifest) Assessments() []Resource {
	var out []Resource
	for _, r := range m.Resources {
		if isAssessmentType(r.Type) {
			out = append(out, r)
		}
	}
	return out
}

func isAssessmentType(t string) bool {
	t = strings.ToLower(t)
	return strings.Contains(t, "assessment") || strings.Contains(t, "imsqti")
}

// QuizFile picks the QTI document path for an assessment resource. Canvas
// lays quizzes out as <ident>/assessment_qti.xml; fall back to the declared
// href or first file.
func (r Resource) QuizFile() string {
	for _, f := range r.Files {
		if strings.HasSuffix(f, "assessment_qti.xml") {
			return f
		}
	}
	for _, f := range r.Files {
		if strings.HasSuffix(strings.ToLower(f), ".xml") {
			return f
		}
	}
	return r.Href
}
