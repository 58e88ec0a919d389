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

package commands

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flagRequired(t *testing.T, cmd *cobra.Command, name string) bool {
	t.Helper()

	flag := cmd.Flags().Lookup(name)
	require.NotNil(t, flag, "flag %s not defined", name)

	return len(flag.Annotations[cobra.BashCompOneRequiredFlag]) > 0
}

func TestDeviceCreateRequiredFlags(t *testing.T) {
	for _, name := range []string{"name", "site", "role", "type", "prefix"} {
		assert.True(t, flagRequired(t, deviceCreateCmd, name), "flag %s should be required", name)
	}

	// The template interface is optional: without it the address is
	// created unassigned.
	assert.False(t, flagRequired(t, deviceCreateCmd, "interface"))
}

func TestIPAssignRequiredFlags(t *testing.T) {
	for _, name := range []string{"device", "prefix", "interface"} {
		assert.True(t, flagRequired(t, ipAssignCmd, name), "flag %s should be required", name)
	}

	assert.False(t, flagRequired(t, ipAssignCmd, "commit"))
}
