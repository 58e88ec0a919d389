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

package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	log, err := New(&Config{Level: "debug", Output: "stdout"})
	require.NoError(t, err)
	require.NotNil(t, log)
}

func TestNewDefaults(t *testing.T) {
	log, err := New(nil)
	require.NoError(t, err)
	require.NotNil(t, log)
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(&Config{Level: "chatty"})
	require.Error(t, err)
}

func TestWithComponent(t *testing.T) {
	log := NewTestLogger()

	component := log.WithComponent("ingester")
	component.Info().Msg("discarded")
}
