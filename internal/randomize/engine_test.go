package randomize

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEngineArgs(t *testing.T) {
	e := Engine{
		JavaPath: "/opt/java/bin/java",
		JarPath:  "/data/PokeRandoZX.jar",
		HeapMB:   4608,
	}

	got := e.Args("/tmp/work/src.gb", "/data/configs/gb.rnqs", "/tmp/work/randomized.gb")
	want := []string{
		"-Xmx4608M",
		"-jar", "/data/PokeRandoZX.jar",
		"cli",
		"-i", "/tmp/work/src.gb",
		"-o", "/tmp/work/randomized.gb",
		"-s", "/data/configs/gb.rnqs",
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Args() = %v, want %v", got, want)
	}
}

func TestEnginePreflight(t *testing.T) {
	dir := t.TempDir()
	java := filepath.Join(dir, "java")
	jar := filepath.Join(dir, "PokeRandoZX.jar")
	if err := os.WriteFile(java, []byte{}, 0755); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	if err := os.WriteFile(jar, []byte{}, 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	tests := []struct {
		name    string
		engine  Engine
		wantErr bool
	}{
		{"both present", Engine{JavaPath: java, JarPath: jar, HeapMB: 4608}, false},
		{"missing java", Engine{JavaPath: filepath.Join(dir, "nope"), JarPath: jar}, true},
		{"missing jar", Engine{JavaPath: java, JarPath: filepath.Join(dir, "nope.jar")}, true},
		{"empty java path", Engine{JarPath: jar}, true},
		{"empty jar path", Engine{JavaPath: java}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.engine.Preflight()
			if (err != nil) != tc.wantErr {
				t.Errorf("Preflight() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestTailBuffer(t *testing.T) {
	var forwarded []string
	tail := newTailBuffer(func(line string) {
		forwarded = append(forwarded, line)
	})

	tail.Write([]byte("first li"))
	tail.Write([]byte("ne\r\nsecond line\n\n"))

	want := []string{"first line", "second line"}
	if !reflect.DeepEqual(tail.Lines(), want) {
		t.Errorf("Lines() = %v, want %v", tail.Lines(), want)
	}
	if !reflect.DeepEqual(forwarded, want) {
		t.Errorf("forwarded lines = %v, want %v", forwarded, want)
	}
}

func TestTailBufferLimit(t *testing.T) {
	tail := newTailBuffer(nil)
	for i := 0; i < tailLimit*2; i++ {
		tail.Write([]byte("line\n"))
	}
	if got := len(tail.Lines()); got != tailLimit {
		t.Errorf("retained %d lines, want %d", got, tailLimit)
	}
}
