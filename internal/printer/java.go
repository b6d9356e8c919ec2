package printer

// javaPrelude implements the built-in Sys and TextIO classes for
// translated programs.
const javaPrelude = `import java.io.FileInputStream;
import java.io.FileNotFoundException;
import java.io.InputStream;
import java.io.PrintStream;
import java.util.Random;
import java.util.Scanner;

final class Sys {
	private final Random random = new Random();

	public void exit(int status) {
		System.exit(status);
	}

	public int time() {
		return (int) (System.currentTimeMillis() / 1000);
	}

	public int random() {
		return random.nextInt();
	}
}

final class TextIO {
	private static final InputStream DEFAULT_IN = System.in;
	private static final PrintStream DEFAULT_OUT = System.out;
	private static final PrintStream DEFAULT_ERR = System.err;

	private Scanner in = new Scanner(System.in);
	private PrintStream out = DEFAULT_OUT;

	public void readStdin() {
		in = new Scanner(DEFAULT_IN);
	}

	public void readFile(String filename) {
		try {
			in = new Scanner(new FileInputStream(filename));
		} catch (FileNotFoundException e) {
			DEFAULT_ERR.println("Error: file " + filename + " is not found.");
		}
	}

	public void writeStdout() {
		out = DEFAULT_OUT;
	}

	public void writeStderr() {
		out = DEFAULT_ERR;
	}

	public void writeFile(String filename) {
		try {
			out = new PrintStream(filename);
		} catch (FileNotFoundException e) {
			DEFAULT_ERR.println("Error: file " + filename + " is not found.");
		}
	}

	public String getString() {
		return in.hasNextLine() ? in.nextLine() : null;
	}

	public int getInt() {
		return in.hasNextInt() ? in.nextInt() : 0;
	}

	public TextIO putString(String s) {
		out.print(s);
		return this;
	}

	public TextIO putInt(int n) {
		out.print(n);
		return this;
	}
}

`
