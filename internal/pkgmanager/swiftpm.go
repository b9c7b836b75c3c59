/**
Licensed to the Apache Software Foundation (ASF) under one
or more contributor license agreements.  See the NOTICE file
distributed with this work for additional information
regarding copyright ownership.  The ASF licenses this file
to you under the Apache License, Version 2.0 (the
'License'); you may not use this file except in compliance
with the License.  You may obtain a copy of the License at
http://www.apache.org/licenses/LICENSE-2.0
Unless required by applicable law or agreed to in writing,
software distributed under the License is distributed on an
'AS IS' BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
KIND, either express or implied.  See the License for the
specific language governing permissions and limitations
under the License.
*/
package pkgmanager

import (
	"context"
	"fmt"

	"github.com/soapywu/pbxwizard/internal/detect"
	"github.com/soapywu/pbxwizard/pbxproj"
)

// SwiftPM links a Swift package product into an open Xcode project. The
// change stays in memory until the project is saved.
type SwiftPM struct {
	Project *pbxproj.XcodeProject
}

func (s *SwiftPM) Name() string {
	return "Swift Package Manager"
}

func (s *SwiftPM) Detect(dir string) bool {
	projects, err := detect.FindXcodeProjects(dir)
	return err == nil && len(projects) > 0
}

func (s *SwiftPM) AddDependency(_ context.Context, _ string, target string, pkg Package) error {
	if _, ok := s.Project.FindTarget(target); !ok {
		return fmt.Errorf("target %q not found in %s", target, s.Project.FilePath())
	}
	s.Project.AddPackageDependency(target, pkg.URL, pkg.Name, pkg.Version)
	return nil
}
