// Package buildsys wraps external build-system tools behind the narrow
// configure/build/install contract the recipe lifecycle delegates to.
//
// [CMake] is the concrete driver: it spawns the cmake binary for each step,
// passing the source root and definitions at configure time and the staging
// prefix at install time. A non-zero exit from the tool is surfaced with the
// captured stderr; the lifecycle maps each step's failure onto its own error
// taxonomy.
package buildsys
