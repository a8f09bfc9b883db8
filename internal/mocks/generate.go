// Package mocks provides mock implementations for testing the render pipeline.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the
// core port interfaces. The generated files are committed so tests build without a
// codegen step; regenerate them after interface changes with:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRunner := mocks.NewMockSceneRunner(ctrl)
//	mockRunner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(result, nil)
package mocks

// Generate mock for SceneRunner interface from internal/core package.
// This creates MockSceneRunner with methods for all SceneRunner interface methods:
// Run
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=scene_runner_mock.go github.com/scenesmith/scenesmith/internal/core SceneRunner

// Generate mock for OutputLocator interface from internal/core package.
// This creates MockOutputLocator with methods for all OutputLocator interface methods:
// Locate
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=output_locator_mock.go github.com/scenesmith/scenesmith/internal/core OutputLocator

// Generate mock for ArtifactStore interface from internal/core package.
// This creates MockArtifactStore with methods for all ArtifactStore interface methods:
// Publish, Open
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=artifact_store_mock.go github.com/scenesmith/scenesmith/internal/core ArtifactStore

// Generate mock for CodeSynthesizer interface from internal/core package.
// This creates MockCodeSynthesizer with methods for all CodeSynthesizer interface methods:
// GenerateScene
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=code_synthesizer_mock.go github.com/scenesmith/scenesmith/internal/core CodeSynthesizer

// Generate mock for RenderRecordRepository interface from internal/core package.
// This creates MockRenderRecordRepository with methods for all RenderRecordRepository interface methods:
// Create, List
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=render_record_repository_mock.go github.com/scenesmith/scenesmith/internal/core RenderRecordRepository

// Generate mock for CacheRepository interface from internal/core package.
// This creates MockCacheRepository with methods for all CacheRepository interface methods:
// Set, Get, Delete, Exists, SetTTL, Health
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=cache_repository_mock.go github.com/scenesmith/scenesmith/internal/core CacheRepository
