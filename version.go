// Copyright (c) 2025-present deep.rent GmbH (https://deep.rent)
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

// Version identifies the kernel's ABI: the shape of KernelCall's service
// codes and the Thread/Callback record layout that an entry function
// compiled against this package can depend on. Firmware images pin a
// minimum kernel version the same way; here that check is a library
// call instead of a build-time assertion.
//
// Adapted from the teacher's updater package, which compares a running
// build's version against a GitHub release tag with the same library.

package chronos

import "golang.org/x/mod/semver"

// Version is this package's semantic version tag.
const Version = "v0.1.0"

// CompatibleWith reports whether required is satisfied by Version: its
// major version must match exactly and its minor.patch must be no newer
// than Version's. An entry function written against a newer minor
// version may rely on a service code this build doesn't implement yet.
func CompatibleWith(required string) bool {
	if !semver.IsValid(required) || !semver.IsValid(Version) {
		return false
	}
	if semver.Major(required) != semver.Major(Version) {
		return false
	}
	return semver.Compare(required, Version) <= 0
}
