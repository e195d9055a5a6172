package validate

// validateDepends checks each :depends entry in the pclass's meta against
// the declared version of the named pclass (spec §7 "Dependency errors"):
// the dependency must name a declared pclass, and if both declare a
// version, they must match exactly.
func (v *validator) validateDepends() error {
	ctx := []string{":meta", ":depends"}
	for _, dep := range v.pclass.Meta.Depends {
		target, ok := v.pclassOf(dep.Name)
		if !ok {
			return v.fail(ctx, "defpclass meta :depends upon a non-existent model: %s", dep.Name)
		}
		if target.Meta.HasVersion && target.Meta.Version != dep.Version {
			return v.fail(ctx, "defpclass meta :depends upon [%s %q] but the available version is: %q", dep.Name, dep.Version, target.Meta.Version)
		}
	}
	return nil
}
