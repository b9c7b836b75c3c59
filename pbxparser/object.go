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
package pbxparser

import (
	"encoding/json"
	"reflect"
)

type IterateActionType = int8

const (
	IterateActionContinue IterateActionType = iota
	IterateActionBreak
)

type ObjectItem = SliceItem

// Object is one dictionary of the project document. The zero Object is
// valid for reading and behaves like an empty dictionary.
type Object struct {
	*SliceMap
}

type ObjectWithUUID struct {
	Object
	UUID string
}

func NewObjectItem(key string, value interface{}) ObjectItem {
	return SliceItem{key: key, data: value}
}

func NewObject() Object {
	return Object{
		SliceMap: NewSliceMap(),
	}
}

func NewObjectWithData(items []ObjectItem) Object {
	o := NewObject()
	for _, item := range items {
		o.Set(item.key, item.data)
	}
	return o
}

func (o Object) toMarshalJSONData() map[string]interface{} {
	dataMap := make(map[string]interface{})
	o.Foreach(func(key string, val interface{}) IterateActionType {
		switch v := val.(type) {
		case Object:
			dataMap[key] = v.toMarshalJSONData()
		case []interface{}:
			arr := make([]interface{}, len(v))
			for i, elem := range v {
				if obj, ok := elem.(Object); ok {
					arr[i] = obj.toMarshalJSONData()
				} else {
					arr[i] = elem
				}
			}
			dataMap[key] = arr
		default:
			dataMap[key] = val
		}
		return IterateActionContinue
	})
	return dataMap
}

func (o Object) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.toMarshalJSONData())
}

func (o Object) IsEmpty() bool {
	return o.SliceMap == nil || o.Size() == 0
}

// IsNil reports whether the Object was never allocated. Unlike IsEmpty it
// is false for a dictionary that exists but has no entries.
func (o Object) IsNil() bool {
	return o.SliceMap == nil
}

// LookupObject returns the dictionary stored under key, if the value is one.
func (o Object) LookupObject(key string) (Object, bool) {
	value, ok := o.Get(key)
	if !ok {
		return Object{}, false
	}
	obj, ok := value.(Object)
	return obj, ok
}

// GetObject returns the dictionary under key, or an empty Object when the
// key is missing or holds something else.
func (o Object) GetObject(key string) Object {
	if obj, ok := o.LookupObject(key); ok {
		return obj
	}
	return NewObject()
}

func (o Object) GetString(key string) string {
	if value, ok := o.Get(key); ok {
		if v, ok := value.(string); ok {
			return v
		}
	}
	return ""
}

func (o Object) GetInt(key string) int {
	if value, ok := o.Get(key); ok {
		switch value.(type) {
		case int, int8, int16, int32, int64:
			return int(reflect.ValueOf(value).Int())
		}
	}
	return 0
}

// GetArray returns the list under key. The second result is false when the
// key is missing or does not hold a list.
func (o Object) GetArray(key string) ([]interface{}, bool) {
	value, ok := o.Get(key)
	if !ok {
		return nil, false
	}
	arr, ok := value.([]interface{})
	return arr, ok
}

type ApplyFunc = func(key string, val interface{}) IterateActionType
type FilterFunc = func(key string, val interface{}) bool

func (o Object) Foreach(apply ApplyFunc) {
	if o.IsEmpty() {
		return
	}
	for _, item := range o.Items() {
		if item.data == nil {
			continue
		}
		if apply(item.key, item.data) == IterateActionBreak {
			break
		}
	}
}

func (o Object) ForeachWithFilter(apply ApplyFunc, filter FilterFunc) {
	if o.IsEmpty() {
		return
	}
	for _, item := range o.Items() {
		if item.data == nil || !filter(item.key, item.data) {
			continue
		}
		if apply(item.key, item.data) == IterateActionBreak {
			break
		}
	}
}

func (o Object) Filter(f FilterFunc) Object {
	newObj := NewObject()
	for _, item := range o.Items() {
		if f(item.key, item.data) {
			newObj.Set(item.key, item.data)
		}
	}
	return newObj
}
