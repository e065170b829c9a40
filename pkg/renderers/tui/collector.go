package tui

import (
	"context"
	"fmt"

	"github.com/goliatone/go-portfolio/pkg/contact"
)

const defaultMaxAttempts = 3

var fieldHelp = map[contact.Field]string{
	contact.FieldName:    "Your Name",
	contact.FieldEmail:   "Your Email",
	contact.FieldMessage: "Your Message",
}

// Collector drives a contact.Controller from terminal prompts. Each prompt is
// pre-filled with the controller's current value, so a rejected or failed
// attempt only needs the visitor to fix what is wrong.
type Collector struct {
	driver      PromptDriver
	theme       Theme
	maxAttempts int
}

// NewCollector builds a Collector. Without WithPromptDriver it prompts on the
// process terminal through survey.
func NewCollector(options ...Option) *Collector {
	c := &Collector{
		theme:       DefaultTheme,
		maxAttempts: defaultMaxAttempts,
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	if c.driver == nil {
		c.driver = NewSurveyDriver(nil)
	}
	return c
}

// CollectContact is a shortcut for NewCollector(options...).Collect.
func CollectContact(ctx context.Context, controller *contact.Controller, options ...Option) (contact.Outcome, error) {
	return NewCollector(options...).Collect(ctx, controller)
}

// Collect prompts for every field and submits until the message is
// acknowledged, the visitor declines to retry a failed delivery, or the
// attempts run out. The last outcome is always returned.
func (c *Collector) Collect(ctx context.Context, controller *contact.Controller) (contact.Outcome, error) {
	if controller == nil {
		return contact.Outcome{}, ErrControllerNil
	}

	var outcome contact.Outcome
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := c.promptFields(ctx, controller); err != nil {
			return outcome, err
		}

		outcome = controller.Submit(ctx)
		switch outcome.Status {
		case contact.StatusAcknowledged:
			return outcome, c.info(ctx, c.theme.InfoPrefix+outcome.Message)
		case contact.StatusFailed:
			if err := c.info(ctx, c.theme.ErrorPrefix+outcome.Message); err != nil {
				return outcome, err
			}
			if attempt < c.maxAttempts {
				retry, err := c.driver.Confirm(ctx, ConfirmConfig{
					Message: c.theme.PromptPrefix + "Try again?",
					Default: true,
				})
				if err != nil {
					return outcome, err
				}
				if !retry {
					return outcome, nil
				}
			}
		default:
			if outcome.Message != "" {
				if err := c.info(ctx, c.theme.ErrorPrefix+outcome.Message); err != nil {
					return outcome, err
				}
			}
			for _, field := range outcome.Fields.Fields() {
				for _, message := range outcome.Fields[field] {
					if err := c.info(ctx, c.theme.ErrorPrefix+message); err != nil {
						return outcome, err
					}
				}
			}
		}
	}
	return outcome, fmt.Errorf("%w (%d)", ErrTooManyAttempts, c.maxAttempts)
}

func (c *Collector) promptFields(ctx context.Context, controller *contact.Controller) error {
	for _, field := range contact.Fields() {
		var (
			value string
			err   error
		)
		message := c.theme.PromptPrefix + field.Label()
		if field == contact.FieldMessage {
			value, err = c.driver.TextArea(ctx, TextAreaConfig{
				Message: message,
				Default: controller.Value(field),
				Help:    fieldHelp[field],
			})
		} else {
			value, err = c.driver.Input(ctx, InputConfig{
				Message: message,
				Default: controller.Value(field),
				Help:    fieldHelp[field],
			})
		}
		if err != nil {
			return fmt.Errorf("tui: prompt %s: %w", field, err)
		}
		if err := controller.UpdateField(field, value); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collector) info(ctx context.Context, msg string) error {
	return c.driver.Info(ctx, msg)
}
