package core

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"python-versions/internal/ports"
	"python-versions/internal/types"
)

const unreadablePackageMsg = "unreadable package"

// Extractor turns a package file into its interpreter-family
// classification. It never unpacks or executes the payload.
type Extractor struct {
	Reader  ports.PackageReaderPort
	Matcher ports.FamilyMatcherPort
}

func NewExtractor(reader ports.PackageReaderPort, matcher ports.FamilyMatcherPort) Extractor {
	return Extractor{Reader: reader, Matcher: matcher}
}

// Extract reads one package. Any reader failure is reported as an
// unreadable package error.
func (e Extractor) Extract(path string) (types.ExtractedPackage, error) {
	fileName := filepath.Base(path)
	meta, err := e.Reader.ReadPackage(path)
	if err != nil {
		return types.ExtractedPackage{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s: %s", unreadablePackageMsg, fileName)).
			WithCause(err)
	}
	return types.ExtractedPackage{
		FileName:       fileName,
		Name:           meta.Name,
		Format:         meta.Format,
		Classification: ClassifyRequirements(e.Matcher, meta.Format, meta.Requirements),
	}, nil
}

// ExtractAll extracts packages strictly in the given order. Unreadable
// packages are reported to the observer and left out of the result; the
// second return value counts them.
func (e Extractor) ExtractAll(paths []string, observer ports.ObserverPort) ([]types.ExtractedPackage, int) {
	var out []types.ExtractedPackage
	unreadable := 0
	for _, path := range paths {
		fileName := filepath.Base(path)
		observe(observer, types.EventLevelDebug, fileName, fmt.Sprintf("Checking %s", fileName))
		pkg, err := e.Extract(path)
		if err != nil {
			unreadable++
			observe(observer, types.EventLevelError, fileName, err.Error())
			continue
		}
		out = append(out, pkg)
	}
	return out, unreadable
}

// ClassifyRequirements maps each requirement string to a family. Only the
// first requirement implicating a family is retained as its evidence.
func ClassifyRequirements(matcher ports.FamilyMatcherPort, format types.PackageFormat, requirements []string) types.PackageClassification {
	classification := types.PackageClassification{}
	for _, requirement := range requirements {
		family, ok := matcher.MatchFamily(format, requirement)
		if !ok {
			continue
		}
		classification = recordEvidence(classification, types.RequirementEvidence{
			Family:      family,
			Requirement: requirement,
		})
	}
	return classification
}

func recordEvidence(classification types.PackageClassification, evidence types.RequirementEvidence) types.PackageClassification {
	if _, exists := classification.Lookup(evidence.Family); exists {
		return classification
	}
	classification.Evidence = append(classification.Evidence, evidence)
	return classification
}

// IsUnreadablePackage reports whether err came from Extract failing to
// read package metadata.
func IsUnreadablePackage(err error) bool {
	var builder *errbuilder.ErrBuilder
	if !errors.As(err, &builder) {
		return false
	}
	return strings.HasPrefix(builder.Msg, unreadablePackageMsg)
}
