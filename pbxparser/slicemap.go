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

import "sort"

type SliceItem struct {
	key  string
	data interface{}
}

func (i *SliceItem) Key() string {
	return i.key
}

func (i *SliceItem) Value() interface{} {
	return i.data
}

// SliceMap is a map that remembers insertion order. Project files are
// written back in the order they were read, so every object of the
// document lives in one of these.
type SliceMap struct {
	mp map[string]int
	sl []*SliceItem
}

func NewSliceMap() *SliceMap {
	return &SliceMap{
		mp: make(map[string]int),
		sl: make([]*SliceItem, 0),
	}
}

func (m *SliceMap) ForceGet(key string) interface{} {
	v, _ := m.Get(key)
	return v
}

func (m *SliceMap) Get(key string) (interface{}, bool) {
	if m == nil {
		return nil, false
	}
	idx, found := m.mp[key]
	if !found {
		return nil, false
	}
	return m.sl[idx].data, true
}

// Set replaces key in place or appends it. Unlike the readers it needs a
// map built by NewSliceMap; the zero Object panics here.
func (m *SliceMap) Set(key string, v interface{}) {
	if idx, found := m.mp[key]; found {
		m.sl[idx] = &SliceItem{key: key, data: v}
		return
	}
	m.sl = append(m.sl, &SliceItem{key: key, data: v})
	m.mp[key] = len(m.sl) - 1
}

// SetSorted inserts key before the first existing key that sorts after it.
// Existing keys are replaced in place.
func (m *SliceMap) SetSorted(key string, v interface{}) {
	if _, found := m.mp[key]; found {
		m.Set(key, v)
		return
	}
	idx := sort.Search(len(m.sl), func(i int) bool {
		return m.sl[i].key > key
	})
	m.InsertAt(idx, key, v)
}

// InsertAt places key at position idx, shifting later items.
func (m *SliceMap) InsertAt(idx int, key string, v interface{}) {
	if _, found := m.mp[key]; found {
		m.Delete(key)
	}
	if idx < 0 {
		idx = 0
	}
	if idx > len(m.sl) {
		idx = len(m.sl)
	}
	m.sl = append(m.sl, nil)
	copy(m.sl[idx+1:], m.sl[idx:])
	m.sl[idx] = &SliceItem{key: key, data: v}
	m.reindex(idx)
}

func (m *SliceMap) Has(key string) bool {
	if m == nil {
		return false
	}
	_, found := m.mp[key]
	return found
}

func (m *SliceMap) Delete(key string) {
	if m == nil {
		return
	}
	idx, found := m.mp[key]
	if !found {
		return
	}
	m.DeleteAt(idx)
}

func (m *SliceMap) DeleteAt(idx int) {
	if m == nil || idx < 0 || idx >= len(m.sl) {
		return
	}
	delete(m.mp, m.sl[idx].key)
	m.sl = append(m.sl[:idx], m.sl[idx+1:]...)
	m.reindex(idx)
}

// reindex refreshes positions from idx on; deletes and inserts move them.
func (m *SliceMap) reindex(from int) {
	for i := from; i < len(m.sl); i++ {
		m.mp[m.sl[i].key] = i
	}
}

// Clear empties the map in place, so every Object sharing it sees the
// change.
func (m *SliceMap) Clear() {
	m.mp = make(map[string]int)
	m.sl = make([]*SliceItem, 0)
}

func (m *SliceMap) Size() int {
	if m == nil {
		return 0
	}
	return len(m.sl)
}

// Items returns a snapshot of the items, so callers may mutate the map
// while ranging over the result.
func (m *SliceMap) Items() []*SliceItem {
	if m == nil {
		return nil
	}
	items := make([]*SliceItem, len(m.sl))
	copy(items, m.sl)
	return items
}

func (m *SliceMap) GetAt(idx int) (interface{}, bool) {
	if m == nil || idx < 0 || idx >= len(m.sl) {
		return nil, false
	}
	return m.sl[idx].data, true
}
