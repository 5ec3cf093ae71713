// Package buildsys implements the build steps for Indigo Prison.
// The steps don't compile anything themselves; they shell out to the platform's
// C# tooling (and optionally the Unity editor) through mvdan.cc/sh and keep the
// dist directory and the build identity file in order.
// There's no dependency checking: targets are simply run in their declared order.
package buildsys
