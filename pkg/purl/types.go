// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package purl

import (
	"sort"
	"strings"

	"github.com/google/oss-purl/internal/semver"
	"github.com/pkg/errors"
)

// Type tokens for every ecosystem registered in the rule table. These are
// the tokens defined by the Package URL type definitions; parsing an
// unregistered token still succeeds with permissive rules.
const (
	TypeAlpm        = "alpm"
	TypeApk         = "apk"
	TypeBitbucket   = "bitbucket"
	TypeBitnami     = "bitnami"
	TypeCargo       = "cargo"
	TypeCocoapods   = "cocoapods"
	TypeComposer    = "composer"
	TypeConan       = "conan"
	TypeConda       = "conda"
	TypeCPAN        = "cpan"
	TypeCRAN        = "cran"
	TypeDebian      = "deb"
	TypeDocker      = "docker"
	TypeGem         = "gem"
	TypeGeneric     = "generic"
	TypeGithub      = "github"
	TypeGolang      = "golang"
	TypeHackage     = "hackage"
	TypeHex         = "hex"
	TypeHuggingface = "huggingface"
	TypeLuaRocks    = "luarocks"
	TypeMaven       = "maven"
	TypeMLflow      = "mlflow"
	TypeNPM         = "npm"
	TypeNuget       = "nuget"
	TypeOCI         = "oci"
	TypePub         = "pub"
	TypePyPI        = "pypi"
	TypeQpkg        = "qpkg"
	TypeRPM         = "rpm"
	TypeSWID        = "swid"
	TypeSwift       = "swift"
)

// Candidate ecosystems from the purl type registry that define no
// normalization rules beyond the defaults.
const (
	TypeBower      = "bower"
	TypeBrew       = "brew"
	TypeCarthage   = "carthage"
	TypeChef       = "chef"
	TypeChocolatey = "chocolatey"
	TypeClojars    = "clojars"
	TypeCTAN       = "ctan"
	TypeDub        = "dub"
	TypeElm        = "elm"
	TypeTerraform  = "terraform"
	TypeVagrant    = "vagrant"
)

type caseRule int

const (
	casePreserve caseRule = iota
	caseLower
	caseUpper
)

type subpathRule int

const (
	subpathPreserve subpathRule = iota
	subpathForbid
)

// typeRules captures one ecosystem's normalization and validation policy.
// Adding an ecosystem means adding an entry to the table; the parser,
// normalizer, and serializer never change. The zero value is fully
// permissive, which is also the behavior for unregistered types.
type typeRules struct {
	namespaceCase       caseRule
	nameCase            caseRule
	versionCase         caseRule
	nameTransform       func(string) string
	requiredQualifiers  []string
	forbiddenQualifiers []string
	defaultQualifiers   map[string]string
	validVersion        func(string) error
	subpath             subpathRule
	check               func(*PackageURL) error
	repoURL             string
	downloadURL         string
}

// SemverVersions is an opt-in version predicate for ecosystems that
// version with semver. None of the registered descriptors install it by
// default since the purl type definitions leave version syntax open.
func SemverVersions(v string) error {
	return semver.Check(v)
}

var ruleTable = map[string]typeRules{
	TypeAlpm: {
		namespaceCase: caseLower,
		nameCase:      caseLower,
	},
	TypeApk: {
		namespaceCase: caseLower,
		nameCase:      caseLower,
	},
	TypeBitbucket: {
		namespaceCase: caseLower,
		nameCase:      caseLower,
		repoURL:       "https://bitbucket.org/{namespace}/{name}",
		downloadURL:   "https://bitbucket.org/{namespace}/{name}/get/{version}.tar.gz",
	},
	TypeBitnami: {
		nameCase:    caseLower,
		downloadURL: "https://downloads.bitnami.com/files/stacksmith/{name}-{version}.tar.gz",
	},
	TypeCargo: {
		repoURL:     "https://crates.io/crates/{name}",
		downloadURL: "https://crates.io/api/v1/crates/{name}/{version}/download",
	},
	TypeCocoapods: {
		subpath: subpathForbid,
		check:   checkCocoapodsName,
		repoURL: "https://cocoapods.org/pods/{name}",
	},
	TypeComposer: {
		namespaceCase: caseLower,
		nameCase:      caseLower,
		repoURL:       "https://packagist.org/packages/{namespace}/{name}",
	},
	TypeConan: {
		check: checkConanChannel,
	},
	TypeConda: {},
	TypeCPAN: {
		namespaceCase: caseUpper,
		repoURL:       "https://metacpan.org/dist/{name}",
	},
	TypeCRAN: {
		check:   requireVersion,
		repoURL: "https://cran.r-project.org/web/packages/{name}/",
	},
	TypeDebian: {
		namespaceCase: caseLower,
		nameCase:      caseLower,
	},
	TypeDocker: {
		repoURL: "https://hub.docker.com/r/{namespace}/{name}",
	},
	TypeGem: {
		repoURL:     "https://rubygems.org/gems/{name}",
		downloadURL: "https://rubygems.org/downloads/{name}-{version}.gem",
	},
	TypeGeneric: {},
	TypeGithub: {
		namespaceCase: caseLower,
		nameCase:      caseLower,
		repoURL:       "https://github.com/{namespace}/{name}",
		downloadURL:   "https://github.com/{namespace}/{name}/archive/{version}.tar.gz",
	},
	TypeGolang: {
		namespaceCase: caseLower,
		nameCase:      caseLower,
		repoURL:       "https://pkg.go.dev/{namespace}/{name}",
		downloadURL:   "https://proxy.golang.org/{namespace}/{name}/@v/{version}.zip",
	},
	TypeHackage: {
		repoURL:     "https://hackage.haskell.org/package/{name}",
		downloadURL: "https://hackage.haskell.org/package/{name}-{version}/{name}-{version}.tar.gz",
	},
	TypeHex: {
		namespaceCase: caseLower,
		nameCase:      caseLower,
		repoURL:       "https://hex.pm/packages/{name}",
		downloadURL:   "https://repo.hex.pm/tarballs/{name}-{version}.tar",
	},
	TypeHuggingface: {
		// Model revisions are commit hashes, compared case-insensitively.
		versionCase: caseLower,
		repoURL:     "https://huggingface.co/{namespace}/{name}",
	},
	TypeLuaRocks: {
		namespaceCase: caseLower,
		nameCase:      caseLower,
		versionCase:   caseLower,
		repoURL:       "https://luarocks.org/modules/{namespace}/{name}",
	},
	TypeMaven: {
		check:       requireNamespace,
		repoURL:     "https://central.sonatype.com/artifact/{namespace}/{name}",
		downloadURL: "https://repo.maven.apache.org/maven2/{namespacePath}/{name}/{version}/{name}-{version}.jar",
	},
	TypeMLflow: {
		check: checkMLflowName,
	},
	TypeNPM: {
		namespaceCase: caseLower,
		nameCase:      caseLower,
		repoURL:       "https://www.npmjs.com/package/{fullname}",
		downloadURL:   "https://registry.npmjs.org/{fullname}/-/{name}-{version}.tgz",
	},
	TypeNuget: {
		repoURL:     "https://www.nuget.org/packages/{name}",
		downloadURL: "https://www.nuget.org/api/v2/package/{name}/{version}",
	},
	TypeOCI: {
		nameCase: caseLower,
		check:    forbidNamespace,
	},
	TypePub: {
		nameCase: caseLower,
		check:    checkPubName,
		repoURL:  "https://pub.dev/packages/{name}",
	},
	TypePyPI: {
		nameCase: caseLower,
		// PEP 503: runs of '_' and '-' compare equal; '-' is canonical.
		nameTransform: func(name string) string {
			return strings.ReplaceAll(name, "_", "-")
		},
		repoURL: "https://pypi.org/project/{name}/",
	},
	TypeQpkg: {
		namespaceCase: caseLower,
	},
	TypeRPM: {
		namespaceCase: caseLower,
	},
	TypeSWID: {
		requiredQualifiers: []string{"tag_id"},
	},
	TypeSwift: {
		check:   checkSwiftFields,
		repoURL: "https://{namespace}/{name}",
	},

	// Candidate types: registered tokens, default rules.
	TypeBower:      {},
	TypeBrew:       {},
	TypeCarthage:   {},
	TypeChef:       {},
	TypeChocolatey: {},
	TypeClojars:    {},
	TypeCTAN:       {},
	TypeDub:        {},
	TypeElm:        {},
	TypeTerraform:  {},
	TypeVagrant:    {},
}

// lookupRules returns the descriptor for typ. Unregistered types get the
// permissive zero descriptor; known reports which case applies.
func lookupRules(typ string) (rules typeRules, known bool) {
	rules, known = ruleTable[typ]
	return
}

// KnownTypes enumerates the registered type tokens in sorted order.
func KnownTypes() []string {
	types := make([]string, 0, len(ruleTable))
	for t := range ruleTable {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// KnownType reports whether typ has a registered descriptor.
func KnownType(typ string) bool {
	_, ok := ruleTable[strings.ToLower(typ)]
	return ok
}

// URLTemplates returns the repository and download URL templates
// registered for typ, for use by the URL converter. Either may be empty.
func URLTemplates(typ string) (repo, download string, ok bool) {
	rules, known := lookupRules(strings.ToLower(typ))
	if !known {
		return "", "", false
	}
	return rules.repoURL, rules.downloadURL, true
}

func requireVersion(p *PackageURL) error {
	if p.Version == "" {
		return errors.Wrapf(ErrInvalidVersion, "%s requires a version", p.Type)
	}
	return nil
}

func requireNamespace(p *PackageURL) error {
	if p.Namespace == "" {
		return errors.Wrapf(ErrInvalidNamespace, "%s requires a namespace", p.Type)
	}
	return nil
}

func forbidNamespace(p *PackageURL) error {
	if p.Namespace != "" {
		return errors.Wrapf(ErrInvalidNamespace, "%s forbids a namespace", p.Type)
	}
	return nil
}

// checkConanChannel enforces the coupling between the conan namespace
// (user) and the channel qualifier: both or neither.
func checkConanChannel(p *PackageURL) error {
	_, hasChannel := p.Qualifiers["channel"]
	if p.Namespace != "" && !hasChannel {
		return errors.Wrap(ErrMissingQualifier, "conan requires \"channel\" when a namespace is present")
	}
	if p.Namespace == "" && hasChannel {
		return errors.Wrap(ErrForbiddenQualifier, "conan forbids \"channel\" without a namespace")
	}
	return nil
}

// checkSwiftFields enforces that swift purls carry both the source host
// namespace and a version.
func checkSwiftFields(p *PackageURL) error {
	if p.Namespace == "" {
		return errors.Wrap(ErrInvalidNamespace, "swift requires a namespace")
	}
	return requireVersion(p)
}

// checkCocoapodsName rejects pod names the trunk would refuse.
func checkCocoapodsName(p *PackageURL) error {
	if strings.ContainsAny(p.Name, " \t+") || strings.HasPrefix(p.Name, ".") {
		return errors.Wrapf(ErrInvalidName, "cocoapods name %q", p.Name)
	}
	return nil
}

// checkPubName enforces the dart package charset.
func checkPubName(p *PackageURL) error {
	for i := 0; i < len(p.Name); i++ {
		switch c := p.Name[i]; {
		case 'a' <= c && c <= 'z', '0' <= c && c <= '9', c == '_':
		default:
			return errors.Wrapf(ErrInvalidName, "pub name %q", p.Name)
		}
	}
	return nil
}

// checkMLflowName lowercases the model name when the registry is Azure
// Databricks, which compares names case-insensitively. Azure ML preserves
// case.
func checkMLflowName(p *PackageURL) error {
	if repo := p.Qualifiers["repository_url"]; strings.Contains(repo, "azuredatabricks") {
		p.Name = strings.ToLower(p.Name)
	}
	return nil
}
