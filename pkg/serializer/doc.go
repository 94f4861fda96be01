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

// Package serializer writes reports in text, JSON or YAML and reads
// structured files such as the configuration.
//
// The package supports three output formats:
//   - text: values that implement Renderer write themselves; anything else
//     is printed with fmt
//   - json: indented JSON
//   - yaml: YAML with two-space indentation
//
// Usage:
//
//	w, err := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	if err != nil {
//		return err
//	}
//	defer w.Close()
//	if err := w.Serialize(ctx, snapshot); err != nil {
//		return err
//	}
//
// Reading:
//
//	r, err := serializer.NewFileReaderAuto("sysreport.yaml")
//	if err != nil {
//		return err
//	}
//	defer r.Close()
//	err = r.Deserialize(&cfg)
package serializer
