/*
 * Copyright 2025 Routelab.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// LoadRecords reads an export file, accepting the three shapes the
// exporter writes: a top-level list, an object with an "entities" list, or
// a single record treated as a one-element list.
func LoadRecords(path string) ([]RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []RawRecord
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}

		return records, nil
	}

	var wrapper RawRecord
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if entities, ok := wrapper["entities"]; ok {
		var records []RawRecord
		if err := json.Unmarshal(entities, &records); err != nil {
			return nil, fmt.Errorf("parse %s: entities: %w", path, err)
		}

		return records, nil
	}

	return []RawRecord{wrapper}, nil
}
