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

// Package registry collects installed programs and hardware descriptions
// from the Windows registry through pkg/regstore.
//
// Three facilities are read, each from a fixed path under HKEY_LOCAL_MACHINE:
//   - installed programs: every Uninstall subkey carrying DisplayName,
//     Publisher and InstallLocation
//   - CPU: the flat values of CentralProcessor\0
//   - motherboard: the flat values of the BIOS key
//
// A facility whose root key cannot be opened is replaced by a notice; the
// other facilities are still reported. A store that cannot be created at all
// fails the whole collection.
package registry
