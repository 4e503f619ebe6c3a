package config

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/odpf/dotnet-fetch/internal/errors"
	"github.com/odpf/dotnet-fetch/internal/release"
)

// Validate validate the config as an input. If not valid, it returns a config validation error
func Validate(conf *Config) error {
	return validate(conf,
		validation.Field(&conf.Platforms, validation.Required, validation.Each(validation.By(parseWith(release.ParsePlatform)))),
		validation.Field(&conf.Formats, validation.Required, validation.Each(validation.By(parseWith(release.ParseFormat)))),
	)
}

// ValidateResolve validates the config for version resolution only, platforms and formats may be empty
func ValidateResolve(conf *Config) error {
	return validate(conf,
		validation.Field(&conf.Platforms, validation.Each(validation.By(parseWith(release.ParsePlatform)))),
		validation.Field(&conf.Formats, validation.Each(validation.By(parseWith(release.ParseFormat)))),
	)
}

func validate(conf *Config, targetRules ...*validation.FieldRules) error {
	rules := []*validation.FieldRules{
		validation.Field(&conf.Channels, validation.Required, validation.Each(validation.By(validateChannel))),
		validation.Field(&conf.Kinds, validation.Required, validation.Each(validation.By(parseWith(release.ParseKind)))),
	}
	rules = append(rules, targetRules...)
	rules = append(rules,
		validation.Field(&conf.OutputDir, validation.Required),
		validation.Field(&conf.Feed, validation.Required, validation.By(validateFeed)),
		validation.Field(&conf.UncachedFeed, validation.Required, validation.By(validateFeed)),
		nestedFields(&conf.Proxy,
			validation.Field(&conf.Proxy.Address, validation.By(validateFeed)),
		),
		nestedFields(&conf.HTTP,
			validation.Field(&conf.HTTP.Timeout, validation.Required, validation.Min(time.Millisecond)),
		),
		nestedFields(&conf.Retry,
			validation.Field(&conf.Retry.Attempts, validation.Required, validation.Min(1)),
			validation.Field(&conf.Retry.Delay, validation.Required, validation.Min(time.Nanosecond)),
		),
		nestedFields(&conf.Log,
			validation.Field(&conf.Log.Level, validation.In(
				LogLevelDebug,
				LogLevelInfo,
				LogLevelWarning,
				LogLevelError,
				LogLevelFatal,
			)),
		),
	)
	if err := validation.ValidateStruct(conf, rules...); err != nil {
		return errors.ConfigValidation("config", err.Error())
	}
	return nil
}

func validateChannel(value interface{}) error {
	channel, _ := value.(string)
	if strings.TrimSpace(channel) == "" {
		return validation.ErrRequired
	}
	return nil
}

func parseWith[T any](parse func(string) (T, error)) validation.RuleFunc {
	return func(value interface{}) error {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("unexpected value type %T", value)
		}
		_, err := parse(s)
		return err
	}
}

func validateFeed(value interface{}) error {
	raw, _ := value.(string)
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s is not an absolute url", raw)
	}
	return nil
}

// ozzo-validation helper for nested validation struct
// https://github.com/go-ozzo/ozzo-validation/issues/136
func nestedFields(target interface{}, fieldRules ...*validation.FieldRules) *validation.FieldRules {
	return validation.Field(target, validation.By(func(value interface{}) error {
		valueV := reflect.Indirect(reflect.ValueOf(value))
		if valueV.CanAddr() {
			addr := valueV.Addr().Interface()
			return validation.ValidateStruct(addr, fieldRules...)
		}
		return validation.ValidateStruct(target, fieldRules...)
	}))
}
