// Package generator renders the chapter catalog into a static HTML site:
// one page per publishable chapter, a table-of-contents index grouped by
// part, sitemap and robots artifacts, and theme asset copies. Builds are
// incremental when a build manifest from a previous run is available.
package generator
