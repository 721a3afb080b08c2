//
// Copyright (c) 2011-2019 Canonical Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package resolve implements failsafe-schema tag handling: short/long tag
// URI conversion and the kind-based defaulting the composer and serializer
// need (!!str, !!seq, !!map). It deliberately does not infer bool/int/float/
// timestamp types from plain scalar content; that is YAML 1.2 core-schema
// territory and out of scope here.
package resolve

import (
	"strings"

	"github.com/kadlec/yamlcore/internal/document"
)

const (
	StrTag = "!!str"
	SeqTag = "!!seq"
	MapTag = "!!map"
)

var (
	longTags  = make(map[string]string)
	shortTags = make(map[string]string)
)

const longTagPrefix = "tag:yaml.org,2002:"

// ShortTag converts a fully-qualified tag URI to its "!!name" shorthand,
// leaving already-short or custom tags untouched.
func ShortTag(tag string) string {
	if strings.HasPrefix(tag, longTagPrefix) {
		if stag, ok := shortTags[tag]; ok {
			return stag
		}
		shortTags[tag] = "!!" + tag[len(longTagPrefix):]
		return shortTags[tag]
	}
	return tag
}

// LongTag converts a "!!name" shorthand to its fully-qualified tag URI.
func LongTag(tag string) string {
	if strings.HasPrefix(tag, "!!") {
		if ltag, ok := longTags[tag]; ok {
			return ltag
		}
		longTags[tag] = longTagPrefix + tag[2:]
		return longTags[tag]
	}
	return tag
}

// DefaultTag returns the failsafe tag for a node that carried no explicit
// tag: !!str for scalars, !!seq for sequences, !!map for mappings.
func DefaultTag(kind document.Kind) string {
	switch kind {
	case document.SequenceNode:
		return SeqTag
	case document.MappingNode:
		return MapTag
	default:
		return StrTag
	}
}
