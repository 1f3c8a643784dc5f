// Provides platform-appropriate default directories for package builds.
//
// All paths follow XDG conventions on Linux and platform-native conventions
// on macOS and Windows. The tool name "quarry" is used as the subdirectory
// under each base path.
package paths
