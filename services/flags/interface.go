package flags

import (
	"context"
	"fmt"
)

// OnboardingValue is stored once the onboarding flow has been finished.
const OnboardingValue = "true"

// Store is a small persistent key/value store for per-device flags.
type Store interface {
	// Get returns the value for key and whether it was set.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// OnboardingKey is the key holding a device's onboarding-completion flag.
func OnboardingKey(deviceID string) string {
	return "onboarding_completed:" + deviceID
}

// OnboardingComplete reads the device's onboarding flag.
func OnboardingComplete(ctx context.Context, store Store, deviceID string) (bool, error) {
	v, ok, err := store.Get(ctx, OnboardingKey(deviceID))
	if err != nil {
		return false, fmt.Errorf("failed to read onboarding flag: %w", err)
	}
	return ok && v == OnboardingValue, nil
}

// MarkOnboardingComplete persists the device's onboarding flag.
func MarkOnboardingComplete(ctx context.Context, store Store, deviceID string) error {
	if err := store.Set(ctx, OnboardingKey(deviceID), OnboardingValue); err != nil {
		return fmt.Errorf("failed to save onboarding flag: %w", err)
	}
	return nil
}
