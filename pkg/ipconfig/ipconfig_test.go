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
	"bytes"
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T, crlf bool) string {
	t.Helper()
	data, err := os.ReadFile("testdata/ipconfig_all.txt")
	if err != nil {
		t.Fatalf("failed to read testdata: %v", err)
	}
	text := string(data)
	if crlf {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	return text
}

func strPtr(s string) *string { return &s }

func TestSegment(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty input", "", []string{""}},
		{"single block", "a\nb", []string{"a\nb"}},
		{"lf boundary", "a\n\nb", []string{"a", "b"}},
		{"crlf boundary", "a\r\n\r\nb", []string{"a", "b"}},
		{"mixed boundary", "a\r\n\nb\n\r\nc", []string{"a", "b", "c"}},
		{"trailing boundary", "a\r\n\r\n", []string{"a", ""}},
		{"leading boundary", "\n\na", []string{"", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slices.Collect(Segment(tt.in)))
		})
	}
}

func TestSegment_Restartable(t *testing.T) {
	in := "a\n\nb\n\nc"
	seq := Segment(in)

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)
	assert.Equal(t, "a\n\nb\n\nc", in)
}

func TestSegment_StopsEarly(t *testing.T) {
	var got []string
	for block := range Segment("a\n\nb\n\nc") {
		got = append(got, block)
		if block == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		block  string
		want   Adapter
		wantOK bool
	}{
		{
			name:  "wi-fi scenario",
			block: "Description: Wi-Fi\r\nIPv4 Address: 192.168.1.10\r\nSubnet Mask: 255.255.255.0",
			want: Adapter{
				Name:        strPtr("Wi-Fi"),
				IPAddresses: []string{"192.168.1.10"},
				Subnet:      "255.255.255.0",
				DNSServers:  NotAvailable,
				Gateway:     NotAvailable,
			},
			wantOK: true,
		},
		{
			name:  "labels in any order and case",
			block: "default gateway . : 10.0.0.1\nipv4 address . : 10.0.0.5\ndns servers . : 1.1.1.1\n",
			want: Adapter{
				IPAddresses: []string{"10.0.0.5"},
				Subnet:      NotAvailable,
				DNSServers:  "1.1.1.1",
				Gateway:     "10.0.0.1",
			},
			wantOK: true,
		},
		{
			name:  "last subnet wins",
			block: "Description: eth\nIPv4 Address: 10.0.0.5\nSubnet Mask: 255.0.0.0\nSubnet Mask: 255.255.0.0\n",
			want: Adapter{
				Name:        strPtr("eth"),
				IPAddresses: []string{"10.0.0.5"},
				Subnet:      "255.255.0.0",
				DNSServers:  NotAvailable,
				Gateway:     NotAvailable,
			},
			wantOK: true,
		},
		{
			name:  "all addresses kept in order",
			block: "IPv4 Address: 10.0.0.2\nIPv4 Address: 10.0.0.1 \n",
			want: Adapter{
				IPAddresses: []string{"10.0.0.2", "10.0.0.1"},
				Subnet:      NotAvailable,
				DNSServers:  NotAvailable,
				Gateway:     NotAvailable,
			},
			wantOK: true,
		},
		{
			name:  "name only",
			block: "Description . . : Bluetooth Device\n",
			want: Adapter{
				Name:        strPtr("Bluetooth Device"),
				IPAddresses: []string{},
				Subnet:      NotAvailable,
				DNSServers:  NotAvailable,
				Gateway:     NotAvailable,
			},
			wantOK: true,
		},
		{
			name:   "not adapter shaped",
			block:  "Windows IP Configuration\n   Host Name . . : WS-07\n",
			wantOK: false,
		},
		{
			name:   "empty block",
			block:  "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.block)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestIsLive(t *testing.T) {
	tests := []struct {
		name  string
		a     Adapter
		block string
		want  bool
	}{
		{"no addresses", Adapter{IPAddresses: []string{}}, "", false},
		{"nil addresses", Adapter{}, "", false},
		{"only placeholders", Adapter{IPAddresses: []string{NotAvailable}}, "", false},
		{"one real address", Adapter{IPAddresses: []string{NotAvailable, "10.0.0.1"}}, "", true},
		{"disconnected", Adapter{IPAddresses: []string{"10.0.0.1"}}, "Media State : Media disconnected", false},
		{"disconnected any case", Adapter{IPAddresses: []string{"10.0.0.1"}}, "MEDIA DISCONNECTED", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLive(tt.a, tt.block))
		})
	}
}

func TestParse_DisconnectedScenario(t *testing.T) {
	in := "Description: Ethernet\r\nIPv4 Address: 10.0.0.5\r\nMedia State: Media disconnected\r\n\r\n"

	blocks := slices.Collect(Segment(in))
	require.NotEmpty(t, blocks)

	a, ok := Extract(blocks[0])
	require.True(t, ok)
	assert.Equal(t, []string{"10.0.0.5"}, a.IPAddresses)
	assert.False(t, IsLive(a, blocks[0]))
	assert.Empty(t, Parse(in))
}

func TestParse_WiFiScenario(t *testing.T) {
	in := "Description: Wi-Fi\r\nIPv4 Address: 192.168.1.10\r\nSubnet Mask: 255.255.255.0\r\n\r\n"

	adapters := Parse(in)
	require.Len(t, adapters, 1)

	a := adapters[0]
	assert.Equal(t, "Wi-Fi", a.DisplayName())
	assert.Equal(t, []string{"192.168.1.10"}, a.IPAddresses)
	assert.Equal(t, "255.255.255.0", a.Subnet)
	assert.Equal(t, NotAvailable, a.DNSServers)
	assert.Equal(t, NotAvailable, a.Gateway)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, a))
	want := "=== Interface: Wi-Fi ===\n" +
		"  IP Addresses: 192.168.1.10\n" +
		"  Subnet: 255.255.255.0\n" +
		"  DNS Servers: N/A\n" +
		"  Default Gateway: N/A\n\n"
	assert.Equal(t, want, buf.String())
}

func TestParse_Fixture(t *testing.T) {
	for _, crlf := range []bool{false, true} {
		name := "lf"
		if crlf {
			name = "crlf"
		}
		t.Run(name, func(t *testing.T) {
			adapters := Parse(readFixture(t, crlf))
			require.Len(t, adapters, 2)

			wifi := adapters[0]
			assert.Equal(t, "Intel(R) Wi-Fi 6 AX201 160MHz", wifi.DisplayName())
			assert.Equal(t, []string{"192.168.1.23(Preferred)"}, wifi.IPAddresses)
			assert.Equal(t, "255.255.255.0", wifi.Subnet)
			assert.Equal(t, "192.168.1.1", wifi.DNSServers)
			assert.Equal(t, "192.168.1.1", wifi.Gateway)

			vswitch := adapters[1]
			assert.Equal(t, "Hyper-V Virtual Ethernet Adapter", vswitch.DisplayName())
			assert.Equal(t, []string{"172.20.48.1(Preferred)", "10.10.0.1(Preferred)"}, vswitch.IPAddresses)
			assert.Equal(t, "255.255.0.0", vswitch.Subnet)
			assert.Equal(t, NotAvailable, vswitch.DNSServers)
			assert.Equal(t, "", vswitch.Gateway)
		})
	}
}

func TestRender_UnknownNameAndMultipleAddresses(t *testing.T) {
	a := Adapter{
		IPAddresses: []string{"10.0.0.1", "10.0.0.2"},
		Subnet:      NotAvailable,
		DNSServers:  NotAvailable,
		Gateway:     NotAvailable,
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, a))
	assert.Contains(t, buf.String(), "=== Interface: Unknown ===\n")
	assert.Contains(t, buf.String(), "  IP Addresses: 10.0.0.1, 10.0.0.2\n")
}

func TestRender_NoAddresses(t *testing.T) {
	a := Adapter{Name: strPtr("x"), Subnet: NotAvailable, DNSServers: NotAvailable, Gateway: NotAvailable}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, a))
	assert.Contains(t, buf.String(), "  IP Addresses: N/A\n")
}

func FuzzParse(f *testing.F) {
	f.Add("Description: Wi-Fi\r\nIPv4 Address: 192.168.1.10\r\n\r\n")
	f.Add("IPv4 Address:\n\n\n:::\r\r\n")
	f.Add("description:")

	f.Fuzz(func(t *testing.T, in string) {
		for _, a := range Parse(in) {
			if !IsLive(a, "") {
				t.Errorf("Parse returned adapter without a real address: %+v", a)
			}
		}
	})
}
