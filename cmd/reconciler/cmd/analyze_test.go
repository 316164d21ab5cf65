package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestValidateFileExists(t *testing.T) {
	// Create temporary test files
	tmpDir := t.TempDir()
	validFile := filepath.Join(tmpDir, "valid.csv")
	if err := os.WriteFile(validFile, []byte("test"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	tests := []struct {
		name        string
		filePath    string
		description string
		expectError bool
	}{
		{
			name:        "valid file",
			filePath:    validFile,
			description: "test file",
			expectError: false,
		},
		{
			name:        "empty path",
			filePath:    "",
			description: "test file",
			expectError: true,
		},
		{
			name:        "non-existent file",
			filePath:    "/non/existent/file.csv",
			description: "test file",
			expectError: true,
		},
		{
			name:        "directory instead of file",
			filePath:    tmpDir,
			description: "test file",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFileExists(tt.filePath, tt.description)

			if tt.expectError && err == nil {
				t.Errorf("expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateAnalyzeFlags(t *testing.T) {
	// Create temporary test files
	tmpDir := t.TempDir()
	catalogFile := filepath.Join(tmpDir, "catalog.csv")
	priceFile := filepath.Join(tmpDir, "prices.csv")
	costsFile := filepath.Join(tmpDir, "costs.csv")

	if err := os.WriteFile(catalogFile, []byte("code,price\n100,10.00"), 0644); err != nil {
		t.Fatalf("failed to create catalog file: %v", err)
	}
	if err := os.WriteFile(priceFile, []byte("code,desc,price\n100,filtro,10.50"), 0644); err != nil {
		t.Fatalf("failed to create price file: %v", err)
	}
	if err := os.WriteFile(costsFile, []byte("code,cost\n100,8.00"), 0644); err != nil {
		t.Fatalf("failed to create cost file: %v", err)
	}

	tests := []struct {
		name          string
		setupFlags    func()
		expectError   bool
		errorContains string
	}{
		{
			name: "valid flags",
			setupFlags: func() {
				viper.Set("erp-file", catalogFile)
				viper.Set("public-file", priceFile)
				viper.Set("output-format", "console")
			},
			expectError: false,
		},
		{
			name: "valid flags with cost file",
			setupFlags: func() {
				viper.Set("erp-file", catalogFile)
				viper.Set("public-file", priceFile)
				viper.Set("cost-file", costsFile)
				viper.Set("output-format", "xlsx")
			},
			expectError: false,
		},
		{
			name: "missing erp file",
			setupFlags: func() {
				viper.Set("erp-file", "")
				viper.Set("public-file", priceFile)
				viper.Set("output-format", "console")
			},
			expectError:   true,
			errorContains: "erp-file is required",
		},
		{
			name: "missing public file",
			setupFlags: func() {
				viper.Set("erp-file", catalogFile)
				viper.Set("public-file", "")
				viper.Set("output-format", "console")
			},
			expectError:   true,
			errorContains: "public-file is required",
		},
		{
			name: "nonexistent cost file",
			setupFlags: func() {
				viper.Set("erp-file", catalogFile)
				viper.Set("public-file", priceFile)
				viper.Set("cost-file", filepath.Join(tmpDir, "missing.csv"))
				viper.Set("output-format", "console")
			},
			expectError:   true,
			errorContains: "does not exist",
		},
		{
			name: "invalid output format",
			setupFlags: func() {
				viper.Set("erp-file", catalogFile)
				viper.Set("public-file", priceFile)
				viper.Set("output-format", "pdf")
			},
			expectError:   true,
			errorContains: "invalid output format",
		},
		{
			name: "output directory does not exist",
			setupFlags: func() {
				viper.Set("erp-file", catalogFile)
				viper.Set("public-file", priceFile)
				viper.Set("output-format", "json")
				viper.Set("output-file", filepath.Join(tmpDir, "nope", "report.json"))
			},
			expectError:   true,
			errorContains: "output directory does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			tt.setupFlags()

			err := validateAnalyzeFlags(analyzeCmd, nil)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				if tt.errorContains != "" && !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("expected error containing %q, got %q", tt.errorContains, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAnalyzeCommandRegistered(t *testing.T) {
	found := false
	for _, c := range rootCmd.Commands() {
		if c.Name() == "analyze" {
			found = true
			break
		}
	}
	if !found {
		t.Fatal("expected analyze command to be registered on the root command")
	}
}
