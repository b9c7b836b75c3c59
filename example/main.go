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
package main

import (
	"log"
	"os"

	"github.com/soapywu/pbxwizard/pbxproj"
)

func main() {
	projectPath := "project.pbxproj"
	if len(os.Args) > 1 {
		projectPath = os.Args[1]
	}
	project, err := pbxproj.Open(projectPath)
	if err != nil {
		log.Fatal(err)
	}
	dumpToFile := func(name string) {
		file, err := os.OpenFile(name, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
		if err != nil {
			log.Fatal(err)
		}
		defer file.Close()

		err = project.Dump(file)
		if err != nil {
			log.Fatal(err)
		}
	}

	targets := project.Targets()
	if len(targets) == 0 {
		log.Fatal("no targets in ", projectPath)
	}
	target := targets[0]

	dumpToFile("before.json")
	project.AddOrUpdateUploadScript(target, "echo \"upload dSYMs here\"", []string{"${DWARF_DSYM_FOLDER_PATH}/${DWARF_DSYM_FILE_NAME}"})
	project.PatchDebugSymbolSettings(target, true)
	project.AddPackageDependency(target, "https://github.com/getsentry/sentry-cocoa/", "Sentry", "8.0.0")
	dumpToFile("after.json")

	files, _ := project.SourceFilesForTarget(target)
	for _, file := range files {
		log.Println(file)
	}

	writer := pbxproj.NewPbxWriter(project)
	if err := writer.Write("projectAfter.pbxproj"); err != nil {
		log.Fatal(err)
	}
}
