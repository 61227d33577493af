package model

// Decorator enriches a form definition after it has been loaded.
type Decorator interface {
	Decorate(*FormDefinition) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FormDefinition) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(form *FormDefinition) error {
	return fn(form)
}

// Apply runs decorators in order, stopping at the first error.
func Apply(form *FormDefinition, decorators ...Decorator) error {
	for _, d := range decorators {
		if d == nil {
			continue
		}
		if err := d.Decorate(form); err != nil {
			return err
		}
	}
	return nil
}
