package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeSceneNotDetected,
				Message: "no scene class detected",
			},
			want: "no scene class detected",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeUpstream,
				Message: "generative call failed",
				Cause:   errors.New("connection refused"),
			},
			want: "generative call failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &AppError{
		Code:    ErrCodeInternal,
		Message: "wrapped error",
		Cause:   cause,
	}

	if unwrapped := err.Unwrap(); !errors.Is(unwrapped, cause) {
		t.Errorf("AppError.Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantCode ErrorCode
		wantMsg  string
	}{
		{"missing source", MissingSource("no scene code provided"), ErrCodeMissingSource, "no scene code provided"},
		{"missing prompt", MissingPrompt("a prompt is required"), ErrCodeMissingPrompt, "a prompt is required"},
		{"configuration", Configuration("service account key not found"), ErrCodeConfiguration, "service account key not found"},
		{"upstream", Upstream("generative call failed"), ErrCodeUpstream, "generative call failed"},
		{"upstreamf", Upstreamf("model %s unavailable", "g"), ErrCodeUpstream, "model g unavailable"},
		{"generation invalid", GenerationInvalid("no scene class in generated code"), ErrCodeGenerationInvalid, "no scene class in generated code"},
		{"scene not detected", SceneNotDetected("could not detect a scene class"), ErrCodeSceneNotDetected, "could not detect a scene class"},
		{"timeout", Timeout("rendering took too long"), ErrCodeTimeout, "rendering took too long"},
		{"artifact not found", ArtifactNotFound("rendered video not found"), ErrCodeArtifactNotFound, "rendered video not found"},
		{"not found", NotFound("file not found"), ErrCodeNotFound, "file not found"},
		{"not foundf", NotFoundf("file %q not found", "a.mp4"), ErrCodeNotFound, `file "a.mp4" not found`},
		{"validation", Validation("invalid mode"), ErrCodeValidation, "invalid mode"},
		{"validationf", Validationf("invalid mode %q", "x"), ErrCodeValidation, `invalid mode "x"`},
		{"internal", Internal("boom"), ErrCodeInternal, "boom"},
		{"internalf", Internalf("boom %d", 2), ErrCodeInternal, "boom 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %v, want %v", tt.err.Code, tt.wantCode)
			}
			if tt.err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", tt.err.Message, tt.wantMsg)
			}
		})
	}
}

func TestRenderFailed_CarriesLog(t *testing.T) {
	err := RenderFailed("failed to render animation", "Traceback: NameError")
	if err.Code != ErrCodeRenderFailed {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeRenderFailed)
	}
	if got := GetLog(err); got != "Traceback: NameError" {
		t.Errorf("GetLog() = %q, want stderr tail", got)
	}
	if got := GetLog(fmt.Errorf("wrapped: %w", err)); got != "Traceback: NameError" {
		t.Errorf("GetLog() through wrapping = %q, want stderr tail", got)
	}
	if got := GetLog(errors.New("plain")); got != "" {
		t.Errorf("GetLog(plain) = %q, want empty", got)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(cause, ErrCodeInternal, "publish failed")

	if err.Code != ErrCodeInternal {
		t.Errorf("Wrap().Code = %v, want %v", err.Code, ErrCodeInternal)
	}
	if err.Message != "publish failed" {
		t.Errorf("Wrap().Message = %v, want %v", err.Message, "publish failed")
	}
	if !errors.Is(err, cause) {
		t.Error("Wrap() should preserve the cause for errors.Is")
	}
}

func TestWrap_NilError(t *testing.T) {
	if err := Wrap(nil, ErrCodeInternal, "wrapped error"); err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
}

func TestWrapf(t *testing.T) {
	cause := errors.New("exit status 3")
	err := Wrapf(cause, ErrCodeRenderFailed, "renderer %s failed", "manim")

	if err.Message != "renderer manim failed" {
		t.Errorf("Wrapf().Message = %q", err.Message)
	}
	if !errors.Is(err, cause) {
		t.Error("Wrapf() should preserve the cause for errors.Is")
	}
	if err := Wrapf(nil, ErrCodeInternal, "x"); err != nil {
		t.Errorf("Wrapf(nil) = %v, want nil", err)
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		pred func(error) bool
	}{
		{"missing source", MissingSource("m"), IsMissingSource},
		{"missing prompt", MissingPrompt("m"), IsMissingPrompt},
		{"configuration", Configuration("m"), IsConfiguration},
		{"upstream", Upstream("m"), IsUpstream},
		{"generation invalid", GenerationInvalid("m"), IsGenerationInvalid},
		{"scene not detected", SceneNotDetected("m"), IsSceneNotDetected},
		{"timeout", Timeout("m"), IsTimeout},
		{"render failed", RenderFailed("m", ""), IsRenderFailed},
		{"artifact not found", ArtifactNotFound("m"), IsArtifactNotFound},
		{"not found", NotFound("m"), IsNotFound},
		{"validation", Validation("m"), IsValidation},
		{"internal", Internal("m"), IsInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.pred(tt.err) {
				t.Errorf("predicate returned false for its own code")
			}
			if !tt.pred(fmt.Errorf("outer: %w", tt.err)) {
				t.Errorf("predicate returned false for wrapped error")
			}
			if tt.pred(errors.New("plain")) {
				t.Errorf("predicate returned true for a plain error")
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(Timeout("m")); got != ErrCodeTimeout {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeTimeout)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
	if got := GetCode(nil); got != "" {
		t.Errorf("GetCode(nil) = %v, want empty", got)
	}
}
