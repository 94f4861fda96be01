// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package ipconfig

import (
	"fmt"
	"io"
	"iter"
	"regexp"
	"strings"
)

const (
	// NotAvailable is the placeholder for fields that were not reported.
	NotAvailable = "N/A"

	// UnknownName is rendered for adapters without a description.
	UnknownName = "Unknown"

	mediaDisconnected = "media disconnected"
	listSeparator     = ", "
)

var (
	blockBoundary = regexp.MustCompile(`\r?\n\r?\n`)

	// Each label is matched on its own; values run to the end of the line.
	reName    = regexp.MustCompile(`(?i)Description[^\r\n]*?: ([^\r\n]*)`)
	reIPv4    = regexp.MustCompile(`(?i)IPv4 Address[^\r\n]*?:([^\r\n]*)`)
	reSubnet  = regexp.MustCompile(`(?i)Subnet Mask[^\r\n]*?:([^\r\n]*)`)
	reDNS     = regexp.MustCompile(`(?i)DNS Servers[^\r\n]*?:([^\r\n]*)`)
	reGateway = regexp.MustCompile(`(?i)Default Gateway[^\r\n]*?:([^\r\n]*)`)
)

// Adapter is the typed view of one adapter block.
type Adapter struct {
	// Name is nil when the block has no Description label.
	Name        *string  `json:"name,omitempty" yaml:"name,omitempty"`
	IPAddresses []string `json:"ip_addresses" yaml:"ip_addresses"`
	Subnet      string   `json:"subnet" yaml:"subnet"`
	DNSServers  string   `json:"dns_servers" yaml:"dns_servers"`
	Gateway     string   `json:"gateway" yaml:"gateway"`
}

// DisplayName returns the adapter description or UnknownName.
func (a Adapter) DisplayName() string {
	if a.Name == nil {
		return UnknownName
	}
	return *a.Name
}

// Segment splits text into blocks separated by one blank line, in order.
// The returned sequence is lazy and may be iterated more than once.
func Segment(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		rest := text
		for {
			loc := blockBoundary.FindStringIndex(rest)
			if loc == nil {
				yield(rest)
				return
			}
			if !yield(rest[:loc[0]]) {
				return
			}
			rest = rest[loc[1]:]
		}
	}
}

// Extract pulls adapter fields out of one block. It reports false when the
// block carries neither a name nor an address.
func Extract(block string) (Adapter, bool) {
	a := Adapter{
		IPAddresses: []string{},
		Subnet:      lastMatch(reSubnet, block),
		DNSServers:  lastMatch(reDNS, block),
		Gateway:     lastMatch(reGateway, block),
	}

	if m := reName.FindStringSubmatch(block); m != nil {
		name := strings.TrimSpace(m[1])
		a.Name = &name
	}

	for _, m := range reIPv4.FindAllStringSubmatch(block, -1) {
		a.IPAddresses = append(a.IPAddresses, strings.TrimSpace(m[1]))
	}

	if a.Name == nil && len(a.IPAddresses) == 0 {
		return Adapter{}, false
	}
	return a, true
}

// lastMatch returns the trimmed value of the final occurrence of re in block,
// or NotAvailable.
func lastMatch(re *regexp.Regexp, block string) string {
	matches := re.FindAllStringSubmatch(block, -1)
	if len(matches) == 0 {
		return NotAvailable
	}
	return strings.TrimSpace(matches[len(matches)-1][1])
}

// IsLive reports whether a has a real address and its block does not report
// a disconnected medium.
func IsLive(a Adapter, block string) bool {
	if len(a.IPAddresses) == 0 {
		return false
	}
	if strings.Contains(strings.ToLower(block), mediaDisconnected) {
		return false
	}
	for _, ip := range a.IPAddresses {
		if ip != NotAvailable {
			return true
		}
	}
	return false
}

// Parse returns the live adapters found in text, in input order.
func Parse(text string) []Adapter {
	adapters := make([]Adapter, 0)
	for block := range Segment(text) {
		a, ok := Extract(block)
		if !ok || !IsLive(a, block) {
			continue
		}
		adapters = append(adapters, a)
	}
	return adapters
}

// Render writes the text form of a to w.
func Render(w io.Writer, a Adapter) error {
	ips := NotAvailable
	if len(a.IPAddresses) > 0 {
		ips = strings.Join(a.IPAddresses, listSeparator)
	}

	_, err := fmt.Fprintf(w,
		"=== Interface: %s ===\n"+
			"  IP Addresses: %s\n"+
			"  Subnet: %s\n"+
			"  DNS Servers: %s\n"+
			"  Default Gateway: %s\n\n",
		a.DisplayName(), ips, a.Subnet, a.DNSServers, a.Gateway)
	return err
}
