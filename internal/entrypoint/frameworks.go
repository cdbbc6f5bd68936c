package entrypoint

// Plugin describes one framework's conventions for implicit entry points:
// file-path globs whose matches are wholesale entry points (page/route
// files, test files) and export names that are entry points wherever they
// appear (framework-invoked lifecycle hooks).
type Plugin struct {
	Name         string
	GlobPatterns []string
	ExportNames  []string
}

// BuiltinPlugins returns the framework detectors carried regardless of
// project configuration. A project's config can narrow this list to a
// subset by name.
func BuiltinPlugins() []Plugin {
	return []Plugin{
		{
			Name: "nextjs",
			GlobPatterns: []string{
				"pages/**/*.{ts,tsx,js,jsx}",
				"pages/*.{ts,tsx,js,jsx}",
				"app/**/page.{ts,tsx,js,jsx}",
				"app/**/layout.{ts,tsx,js,jsx}",
				"app/**/route.{ts,tsx,js,jsx}",
				"app/**/loading.{ts,tsx,js,jsx}",
				"app/**/error.{ts,tsx,js,jsx}",
				"app/**/not-found.{ts,tsx,js,jsx}",
				"middleware.{ts,js}",
				"next.config.{js,ts,mjs}",
			},
			ExportNames: []string{
				"getStaticProps", "getStaticPaths", "getServerSideProps",
				"getInitialProps", "GET", "POST", "PUT", "PATCH", "DELETE",
				"generateStaticParams", "generateMetadata",
			},
		},
		{
			Name: "jest",
			GlobPatterns: []string{
				"**/*.test.{ts,tsx,js,jsx}",
				"**/*.spec.{ts,tsx,js,jsx}",
				"**/__tests__/**/*.{ts,tsx,js,jsx}",
				"jest.config.{js,ts}",
				"jest.setup.{js,ts}",
			},
			ExportNames: nil,
		},
		{
			Name: "vitest",
			GlobPatterns: []string{
				"**/*.test.{ts,tsx,js,jsx}",
				"**/*.spec.{ts,tsx,js,jsx}",
				"vitest.config.{js,ts,mjs}",
				"vitest.setup.{js,ts}",
			},
			ExportNames: nil,
		},
		{
			Name: "express",
			GlobPatterns: []string{
				"**/routes/**/*.{ts,js}",
				"**/middleware/**/*.{ts,js}",
			},
			ExportNames: []string{"default"},
		},
	}
}

// SelectPlugins returns the builtin plugins named in names, or every
// builtin plugin when names is empty.
func SelectPlugins(names []string) []Plugin {
	all := BuiltinPlugins()
	if len(names) == 0 {
		return all
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	var out []Plugin
	for _, p := range all {
		if wanted[p.Name] {
			out = append(out, p)
		}
	}
	return out
}
