// Copyright 2026 The BlazingJJ Authors
// SPDX-License-Identifier: Apache-2.0

package jj

import (
	"context"
	"strings"
	"testing"

	"github.com/blazingjj/blazingjj/lib/testutil"
)

func TestNewEnv(t *testing.T) {
	testutil.StubBinary(t, "jj", `
case "$*" in
  *" root "*|*" root") echo "/work/repo" ;;
  *" config "*)
    printf 'blazingjj.layout = "vertical"\n'
    printf 'ui.diff.format = "git"\n'
    ;;
  *) exit 1 ;;
esac`)

	env, err := NewEnv(context.Background(), "/work/repo/sub", "@ | ancestors(@)", "jj")
	if err != nil {
		t.Fatalf("NewEnv: %v", err)
	}

	if env.Root != "/work/repo" {
		t.Errorf("Root = %q, want /work/repo", env.Root)
	}
	if env.DefaultRevset != "@ | ancestors(@)" {
		t.Errorf("DefaultRevset = %q", env.DefaultRevset)
	}
	if got := env.Config.Layout(); got != LayoutVertical {
		t.Errorf("Config.Layout() = %v, want LayoutVertical", got)
	}
	if got := env.Config.DiffFormat(); got != DiffGit {
		t.Errorf("Config.DiffFormat() = %v, want DiffGit", got)
	}
	// The runner must be re-anchored at the discovered root, not the
	// starting path.
	if env.Runner().Dir() != "/work/repo" {
		t.Errorf("Runner().Dir() = %q, want /work/repo", env.Runner().Dir())
	}
}

func TestNewEnv_NotARepository(t *testing.T) {
	testutil.StubBinary(t, "jj", `echo "Error: There is no jj repo in ." >&2; exit 1`)

	_, err := NewEnv(context.Background(), "/nowhere", "", "jj")
	if err == nil {
		t.Fatal("expected error outside a jj workspace")
	}
	if !strings.Contains(err.Error(), "no jj workspace found") {
		t.Errorf("error = %v", err)
	}
}

func TestNewEnv_BadConfig(t *testing.T) {
	testutil.StubBinary(t, "jj", `
case "$*" in
  *" root "*|*" root") echo "/work/repo" ;;
  *" config "*) printf 'this is = = not toml\n' ;;
esac`)

	_, err := NewEnv(context.Background(), "/work/repo", "", "jj")
	if err == nil {
		t.Fatal("expected error for unparseable config")
	}
	if !strings.Contains(err.Error(), "parse jj config") {
		t.Errorf("error = %v", err)
	}
}
