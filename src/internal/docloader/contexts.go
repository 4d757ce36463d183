// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package docloader

import (
	"bytes"
	"embed"
	"fmt"
	"sort"

	"github.com/piprate/json-gold/ld"
)

//go:embed contexts/*.jsonld
var contextFS embed.FS

// bundledContexts maps the contexts every signed document uses to copies
// shipped with the binary, so that signing needs no network access.
var bundledContexts = map[string]string{
	"https://www.w3.org/ns/did/v1":                     "contexts/did-v1.jsonld",
	"https://w3id.org/security/suites/jws-2020/v1":     "contexts/jws-2020-v1.jsonld",
	"https://w3id.org/security/suites/ed25519-2020/v1": "contexts/ed25519-2020-v1.jsonld",
}

// BundledContexts returns the URLs served from bundled copies, sorted.
func BundledContexts() []string {
	urls := make([]string, 0, len(bundledContexts))
	for url := range bundledContexts {
		urls = append(urls, url)
	}
	sort.Strings(urls)
	return urls
}

// bundled parses the bundled contexts into a fresh map, so that a Loader
// may add pins without touching another Loader's documents.
func bundled() map[string]any {
	static := make(map[string]any, len(bundledContexts))
	for url, name := range bundledContexts {
		data, err := contextFS.ReadFile(name)
		if err != nil {
			panic(fmt.Sprintf("docloader: bundled context %s: %v", name, err))
		}
		doc, err := ld.DocumentFromReader(bytes.NewReader(data))
		if err != nil {
			panic(fmt.Sprintf("docloader: bundled context %s: %v", name, err))
		}
		static[url] = doc
	}
	return static
}
