package avsinfo

import (
	"errors"
	"slices"
	"testing"

	"go.uber.org/zap"
)

// fakeEnvAPI hands out handle 100+version and reports the configured error
// text for a version's handle.
type fakeEnvAPI struct {
	allocate map[uintptr]bool
	errors   map[uintptr]string

	created   []uintptr
	destroyed []uintptr
}

func (f *fakeEnvAPI) api() envAPI {
	return envAPI{
		create: func(version uintptr) uintptr {
			f.created = append(f.created, version)
			if !f.allocate[version] {
				return 0
			}
			return 100 + version
		},
		lastError: func(env uintptr) string {
			return f.errors[env-100]
		},
		destroy: func(env uintptr) {
			f.destroyed = append(f.destroyed, env)
		},
	}
}

func TestCreateEnvironment(t *testing.T) {
	tests := []struct {
		name          string
		allocate      map[uintptr]bool
		errors        map[uintptr]string
		wantEnv       uintptr
		wantCreated   []uintptr
		wantDestroyed []uintptr
		wantScriptErr string
		wantNotFound  bool
	}{
		{
			name:        "first version accepted",
			allocate:    map[uintptr]bool{6: true, 3: true},
			wantEnv:     106,
			wantCreated: []uintptr{6},
		},
		{
			name:          "rejected version falls back",
			allocate:      map[uintptr]bool{6: true, 3: true},
			errors:        map[uintptr]string{6: "Could not create scriptenvironment"},
			wantEnv:       103,
			wantCreated:   []uintptr{6, 3},
			wantDestroyed: []uintptr{106},
		},
		{
			name:        "unallocated version falls back",
			allocate:    map[uintptr]bool{3: true},
			wantEnv:     103,
			wantCreated: []uintptr{6, 3},
		},
		{
			name:          "every version rejected returns last error",
			allocate:      map[uintptr]bool{6: true, 3: true},
			errors:        map[uintptr]string{6: "v6 rejected", 3: "v3 rejected"},
			wantCreated:   []uintptr{6, 3},
			wantDestroyed: []uintptr{106, 103},
			wantScriptErr: "v3 rejected",
		},
		{
			name:         "nothing allocated",
			allocate:     map[uintptr]bool{},
			wantCreated:  []uintptr{6, 3},
			wantNotFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEnvAPI{allocate: tt.allocate, errors: tt.errors}

			env, err := createEnvironment(fake.api(), interfaceVersions, zap.NewNop())

			var se *ScriptError
			switch {
			case tt.wantScriptErr != "":
				if !errors.As(err, &se) || se.Msg != tt.wantScriptErr {
					t.Fatalf("error = %v, want ScriptError %q", err, tt.wantScriptErr)
				}
			case tt.wantNotFound:
				if !errors.Is(err, ErrRuntimeNotFound) {
					t.Fatalf("error = %v, want ErrRuntimeNotFound", err)
				}
			default:
				if err != nil {
					t.Fatalf("createEnvironment() error = %v", err)
				}
			}

			if env != tt.wantEnv {
				t.Errorf("env = %d, want %d", env, tt.wantEnv)
			}
			if !slices.Equal(fake.created, tt.wantCreated) {
				t.Errorf("created versions = %v, want %v", fake.created, tt.wantCreated)
			}
			if !slices.Equal(fake.destroyed, tt.wantDestroyed) {
				t.Errorf("destroyed = %v, want %v", fake.destroyed, tt.wantDestroyed)
			}
		})
	}
}
