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
package pbxproj

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/soapywu/pbxwizard/pbxparser"
)

const COMMENT_KEY_SUFFIX = pbxparser.COMMENT_KEY_SUFFIX

func isObject(obj interface{}) bool {
	_, ok := obj.(pbxparser.Object)
	return ok
}

func toObject(obj interface{}) pbxparser.Object {
	return obj.(pbxparser.Object)
}

func isArray(obj interface{}) bool {
	_, ok := obj.([]interface{})
	return ok
}

func toArray(obj interface{}) []interface{} {
	return obj.([]interface{})
}

func isString(obj interface{}) bool {
	_, ok := obj.(string)
	return ok
}

func toString(obj interface{}) string {
	return obj.(string)
}

func isInt(obj interface{}) bool {
	switch obj.(type) {
	case int, int8, int16, int32, int64:
		return true
	}
	return false
}

func toIntString(obj interface{}) string {
	switch obj.(type) {
	case int, int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(obj).Int(), 10)
	}
	return ""
}

func toCommentKey(key string) string {
	return key + COMMENT_KEY_SUFFIX
}

func isCommentKey(key string) bool {
	return strings.HasSuffix(key, COMMENT_KEY_SUFFIX)
}

func nonCommentsFilter(key string, v interface{}) bool {
	return !onlyCommentsFilter(key, v)
}

func onlyCommentsFilter(key string, _ interface{}) bool {
	return isCommentKey(key)
}

// interfaceToStringSlice keeps the string elements of a list. Reference
// objects contribute their value.
func interfaceToStringSlice(val interface{}) []string {
	if val == nil {
		return nil
	}
	switch val := val.(type) {
	case []interface{}:
		result := make([]string, 0, len(val))
		for _, v := range val {
			switch v := v.(type) {
			case string:
				result = append(result, v)
			case pbxparser.Object:
				if ref, ok := toCommentValue(v); ok {
					result = append(result, ref.Value)
				}
			}
		}
		return result
	case []string:
		return val
	case string:
		return []string{val}
	default:
		return nil
	}
}

func addToObjectList(obj pbxparser.Object, key string, val interface{}) {
	if obj.IsNil() {
		return
	}
	list, _ := obj.GetArray(key)
	obj.Set(key, append(list, val))
}

func addToObjectListOnlyNotExist(obj pbxparser.Object, key string, val interface{}, equal func(v1, v2 interface{}) bool) {
	if obj.IsNil() {
		return
	}
	list, _ := obj.GetArray(key)
	for _, v := range list {
		if equal(v, val) {
			return
		}
	}
	obj.Set(key, append(list, val))
}

// removeFromObjectList drops matching elements and reports how many went.
func removeFromObjectList(obj pbxparser.Object, key string, condition func(interface{}) bool, all bool) int {
	list, ok := obj.GetArray(key)
	if !ok {
		return 0
	}

	kept := make([]interface{}, 0, len(list))
	removed := 0
	for _, v := range list {
		if condition(v) && (all || removed == 0) {
			removed++
			continue
		}
		kept = append(kept, v)
	}
	if removed > 0 {
		obj.Set(key, kept)
	}
	return removed
}
