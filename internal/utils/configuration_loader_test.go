package utils_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Hristiyan-Anchev/issueboard/internal/utils"
)

const (
	testEnvironmentPrefixConstant                  = "TESTBOARD"
	testImporterSectionKeyConstant                 = "importer"
	testRepositoryKeyConstant                      = testImporterSectionKeyConstant + ".repository"
	testDefaultRepositoryConstant                  = "acme/storefront"
	testConfiguredRepositoryConstant               = "acme/gallery"
	testOverriddenRepositoryConstant               = "acme/backoffice"
	testConfigFileNameConstant                     = "config.yaml"
	testConfigurationNameConstant                  = "config"
	testConfigurationTypeConstant                  = "yaml"
	configurationLoaderSubtestNameTemplateConstant = "%d_%s"
	testCaseDefaultsMessageConstant                = "defaults are applied"
	testCaseFileMessageConstant                    = "config file overrides defaults"
	testCaseEnvironmentMessageConstant             = "environment overrides file"
	environmentVariableNameTemplateConstant        = "%s_%s"
)

type configurationFixture struct {
	Importer configurationImporterFixture `mapstructure:"importer"`
}

type configurationImporterFixture struct {
	Repository string `mapstructure:"repository"`
}

type configurationFixtureDocument struct {
	Importer map[string]string `yaml:"importer"`
}

func TestConfigurationLoaderLoadConfiguration(testInstance *testing.T) {
	testCases := []struct {
		name                  string
		fileRepository        string
		environmentRepository string
		expectedRepository    string
	}{
		{
			name:                  testCaseDefaultsMessageConstant,
			fileRepository:        "",
			environmentRepository: "",
			expectedRepository:    testDefaultRepositoryConstant,
		},
		{
			name:                  testCaseFileMessageConstant,
			fileRepository:        testConfiguredRepositoryConstant,
			environmentRepository: "",
			expectedRepository:    testConfiguredRepositoryConstant,
		},
		{
			name:                  testCaseEnvironmentMessageConstant,
			fileRepository:        testConfiguredRepositoryConstant,
			environmentRepository: testOverriddenRepositoryConstant,
			expectedRepository:    testOverriddenRepositoryConstant,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(configurationLoaderSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			tempDirectory := testInstance.TempDir()
			configurationFilePath := ""
			if len(testCase.fileRepository) > 0 {
				configurationFilePath = filepath.Join(tempDirectory, testConfigFileNameConstant)
				configurationDocument := configurationFixtureDocument{
					Importer: map[string]string{"repository": testCase.fileRepository},
				}
				configurationContent, marshalError := yaml.Marshal(configurationDocument)
				require.NoError(testInstance, marshalError)
				writeError := os.WriteFile(configurationFilePath, configurationContent, 0o600)
				require.NoError(testInstance, writeError)
			}

			if len(testCase.environmentRepository) > 0 {
				environmentVariableName := fmt.Sprintf(
					environmentVariableNameTemplateConstant,
					testEnvironmentPrefixConstant,
					strings.ToUpper(strings.ReplaceAll(testRepositoryKeyConstant, ".", "_")),
				)
				testInstance.Setenv(environmentVariableName, testCase.environmentRepository)
			}

			configurationLoader := utils.NewConfigurationLoader(
				testConfigurationNameConstant,
				testConfigurationTypeConstant,
				testEnvironmentPrefixConstant,
				[]string{tempDirectory},
			)

			defaultValues := map[string]any{
				testRepositoryKeyConstant: testDefaultRepositoryConstant,
			}

			loadedConfiguration := configurationFixture{}
			metadata, loadError := configurationLoader.LoadConfiguration(configurationFilePath, defaultValues, &loadedConfiguration)
			require.NoError(testInstance, loadError)
			require.Equal(testInstance, testCase.expectedRepository, loadedConfiguration.Importer.Repository)

			if len(configurationFilePath) > 0 {
				require.Equal(testInstance, configurationFilePath, metadata.ConfigFileUsed)
			} else {
				require.Empty(testInstance, metadata.ConfigFileUsed)
			}
		})
	}
}
