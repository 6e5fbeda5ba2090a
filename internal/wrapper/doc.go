// Package wrapper runs the delegated build tool on behalf of cargo-clicker.
// It normalizes the arguments, runs the delegate with the recursion guard
// set, mirrors its exit code, and hands the outcome to a detached notifier
// unless the run was silenced or quiet.
package wrapper
