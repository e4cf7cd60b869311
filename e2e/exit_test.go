//go:build e2e && unix

package main

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestApplicationExit(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp(), "Failed to start app")
	require.True(t, tf.Ready(), "Should show the first page")
	require.True(t, tf.SeePlain("lookforjob"), "Should show the title")

	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	// q types into the keyword field while searching, so leave the inputs first
	require.NoError(t, tf.Browse())
	require.NoError(t, tf.Quit())

	select {
	case exitErr := <-done:
		require.NoError(t, exitErr, "Process should exit cleanly")
	case <-time.After(2 * time.Second):
		tf.DumpTailOnFail(t, "exit-failure", 4096)
		t.Fatal("Application did not exit after q")
	}
}

func TestCtrlCExitsFromSearchField(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready())

	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	require.NoError(t, tf.SendCtrlC())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		tf.DumpTailOnFail(t, "ctrlc-failure", 4096)
		t.Fatal("Application did not exit after ctrl+c")
	}
}

func TestExitSavesLastSearch(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready())

	require.NoError(t, tf.Type("rust"))
	require.True(t, tf.SeePlain("rust Engineer p1-1"))

	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()
	require.NoError(t, tf.Browse())
	require.NoError(t, tf.Quit())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("app did not exit after quit")
	}

	data, err := os.ReadFile(tf.ConfigPath())
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), "rust"), "last search should be saved:\n%s", data)
}
